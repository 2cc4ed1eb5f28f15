package domain

import "github.com/shopspring/decimal"

const DefaultRoomType = "Standard"

type Room struct {
	ID            int64
	Number        string
	Type          string
	Capacity      int
	PricePerNight decimal.Decimal
	IsActive      bool
}

type RoomFilter struct {
	MinCapacity *int
	OnlyActive  bool
	Type        string
}

type RoomSortKey string

const (
	RoomSortNumber   RoomSortKey = "number"
	RoomSortPrice    RoomSortKey = "price"
	RoomSortType     RoomSortKey = "type"
	RoomSortCapacity RoomSortKey = "capacity"
)

// RoomSort orders room listings. Ties are always broken by room number.
type RoomSort struct {
	Key  RoomSortKey
	Desc bool
}

func ParseRoomSortKey(s string) (RoomSortKey, bool) {
	switch s {
	case "", "number":
		return RoomSortNumber, true
	case "price", "pricepernight":
		return RoomSortPrice, true
	case "type":
		return RoomSortType, true
	case "capacity":
		return RoomSortCapacity, true
	default:
		return "", false
	}
}
