package catalog

import "context"

// Repository port sumber data katalog
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id ProductID) (*Product, error)
}
