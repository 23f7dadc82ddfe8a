package item

import "context"

// Repository defines the persistence contract for catalog items.
type Repository interface {
	// Save persists a new item and assigns its id.
	Save(ctx context.Context, it *Item) (*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, it *Item) (*Item, error)

	// FindByID retrieves an item by id.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByOwnerID retrieves the items owned by a user, id ascending,
	// limited to one page.
	FindByOwnerID(ctx context.Context, ownerID int64, page, size int) ([]Item, error)

	// Search retrieves available items whose name or description contains
	// the text, case-insensitive, limited to one page.
	Search(ctx context.Context, text string, page, size int) ([]Item, error)

	// FindByRequestID retrieves the items created in answer to a request.
	FindByRequestID(ctx context.Context, requestID int64) ([]Item, error)
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Save persists a new comment and assigns its id.
	Save(ctx context.Context, c *Comment) (*Comment, error)

	// FindByItemID retrieves all comments on an item.
	FindByItemID(ctx context.Context, itemID int64) ([]Comment, error)
}

// RequestRepository defines the persistence contract for item requests.
type RequestRepository interface {
	// Save persists a new request and assigns its id.
	Save(ctx context.Context, r *Request) (*Request, error)

	// FindByID retrieves a request by id.
	FindByID(ctx context.Context, id int64) (*Request, error)

	// FindByRequestorID retrieves a user's own requests, newest first.
	FindByRequestorID(ctx context.Context, requestorID int64) ([]Request, error)

	// FindAllExcluding retrieves other users' requests, newest first,
	// limited to one page.
	FindAllExcluding(ctx context.Context, requestorID int64, page, size int) ([]Request, error)
}
