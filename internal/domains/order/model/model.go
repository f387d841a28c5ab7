package model

import "villa/shared/model"

const (
	TableName  = "food_orders"
	EntityName = "food_order"

	FieldID      = "id"
	FieldGuestID = "guest_id"
	FieldRoomID  = "room_id"
	FieldStatus  = "status"
	FieldTotal   = "total"

	ItemTableName  = "food_order_items"
	ItemEntityName = "food_order_item"

	FieldItemOrderID     = "order_id"
	FieldItemMenuItemID  = "menu_item_id"
	FieldItemName        = "name"
	FieldItemUnitPrice   = "unit_price"
	FieldItemQuantity    = "quantity"
)

// Order is a food order placed by a guest. RoomID is nil for orders served
// outside a room, for example at the restaurant.
type Order struct {
	ID      string  `db:"id"`
	GuestID string  `db:"guest_id"`
	RoomID  *string `db:"room_id"`
	Status  string  `db:"status"`
	Total   float64 `db:"total"`
	model.Metadata
}

// OrderItem snapshots the menu item's name and price at ordering time, so
// later menu edits do not rewrite order history.
type OrderItem struct {
	ID         string  `db:"id"`
	OrderID    string  `db:"order_id"`
	MenuItemID string  `db:"menu_item_id"`
	Name       string  `db:"name"`
	UnitPrice  float64 `db:"unit_price"`
	Quantity   int     `db:"quantity"`
	model.Metadata
}
