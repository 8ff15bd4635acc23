package snapshot

import (
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/mercato/internal/catalog/domain"
	ordersdomain "github.com/smallbiznis/mercato/internal/orders/domain"
)

// Snapshot is the full in-memory copy of stores, products, orders and line
// items at load time. It is never mutated after construction; every dashboard
// recomputation reads from the same value.
type Snapshot struct {
	Stores   []catalogdomain.Store
	Products []catalogdomain.Product
	Orders   []ordersdomain.Order
	Items    []ordersdomain.OrderItem
	LoadedAt time.Time

	storesByID   map[snowflake.ID]*catalogdomain.Store
	productsByID map[snowflake.ID]*catalogdomain.Product
	ordersByID   map[snowflake.ID]*ordersdomain.Order
}

// New builds a snapshot and its lookup indexes.
func New(
	stores []catalogdomain.Store,
	products []catalogdomain.Product,
	orders []ordersdomain.Order,
	items []ordersdomain.OrderItem,
	loadedAt time.Time,
) *Snapshot {
	s := &Snapshot{
		Stores:   stores,
		Products: products,
		Orders:   orders,
		Items:    items,
		LoadedAt: loadedAt,

		storesByID:   make(map[snowflake.ID]*catalogdomain.Store, len(stores)),
		productsByID: make(map[snowflake.ID]*catalogdomain.Product, len(products)),
		ordersByID:   make(map[snowflake.ID]*ordersdomain.Order, len(orders)),
	}
	for i := range stores {
		s.storesByID[stores[i].ID] = &stores[i]
	}
	for i := range products {
		s.productsByID[products[i].ID] = &products[i]
	}
	for i := range orders {
		s.ordersByID[orders[i].ID] = &orders[i]
	}
	return s
}

func (s *Snapshot) StoreByID(id snowflake.ID) (*catalogdomain.Store, bool) {
	store, ok := s.storesByID[id]
	return store, ok
}

func (s *Snapshot) ProductByID(id snowflake.ID) (*catalogdomain.Product, bool) {
	product, ok := s.productsByID[id]
	return product, ok
}

func (s *Snapshot) OrderByID(id snowflake.ID) (*ordersdomain.Order, bool) {
	order, ok := s.ordersByID[id]
	return order, ok
}

// RowCount totals the records held across all four sets.
func (s *Snapshot) RowCount() int64 {
	return int64(len(s.Stores) + len(s.Products) + len(s.Orders) + len(s.Items))
}
