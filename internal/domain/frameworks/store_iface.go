package frameworks

import "context"

type StoreAPI interface {
	ListFrameworks(ctx context.Context) []Framework
	GetFramework(ctx context.Context, id string) (Framework, bool)
	FindQuestion(ctx context.Context, questionID string) (QuestionRef, bool)
	PutFramework(ctx context.Context, framework Framework) error
	DeleteFramework(ctx context.Context, id string) bool
}
