package directory

import "context"

type StoreAPI interface {
	ListUsers(ctx context.Context) []User
	GetUser(ctx context.Context, id string) (User, bool)
	UserByEmail(ctx context.Context, email string) (User, bool)
	PutUser(ctx context.Context, user User) error
}
