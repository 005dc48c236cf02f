package httpserver

import (
	"context"

	"marketplace/internal/domain"
	orderrepo "marketplace/internal/repository/order"
	authsvc "marketplace/internal/service/auth"
	categorysvc "marketplace/internal/service/category"
	couponsvc "marketplace/internal/service/coupon"
	paymentsvc "marketplace/internal/service/payment"
	productsvc "marketplace/internal/service/product"
	reviewsvc "marketplace/internal/service/review"
)

// Deps are the service dependencies the router consumes. Fields are
// interfaces so handler tests can substitute stubs.
type Deps struct {
	Auth       AuthService
	Products   ProductService
	Categories CategoryService
	Carts      CartService
	Orders     OrderService
	Payments   PaymentService
	Coupons    CouponService
	Reviews    ReviewService
	Users      UserDirectory
	Stats      StatsService
}

type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type ProductService interface {
	Create(ctx context.Context, sellerID string, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, actor domain.User, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string, actor domain.User) error
	PublicList(ctx context.Context, categoryID, search string, limit, offset int) ([]domain.Product, error)
	PublicGet(ctx context.Context, id string) (*domain.Product, error)
	ListMine(ctx context.Context, sellerID string) ([]domain.Product, error)
	AdminList(ctx context.Context, status domain.ProductStatus, limit, offset int) ([]domain.Product, error)
	Moderate(ctx context.Context, id string, actor domain.User, status domain.ProductStatus) (*domain.Product, error)
}

type CategoryService interface {
	Tree(ctx context.Context) ([]*domain.CategoryNode, error)
	Create(ctx context.Context, in categorysvc.Input) (*domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.Input) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	AddItem(ctx context.Context, owner domain.CartOwner, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, owner domain.CartOwner, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner domain.CartOwner, itemID string) error
	MergeGuestCart(ctx context.Context, userID, guestID string) error
}

type OrderService interface {
	Checkout(ctx context.Context, userID, couponCode string) (*domain.Order, error)
	GetByID(ctx context.Context, id string, actor domain.User) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListForSeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, next domain.OrderStatus, actor domain.User) (*domain.Order, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, orderID, userID string) (*paymentsvc.IntentResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type CouponService interface {
	Create(ctx context.Context, sellerID string, in couponsvc.Input) (*domain.Coupon, error)
	ListMine(ctx context.Context, sellerID string) ([]domain.Coupon, error)
	Update(ctx context.Context, id string, actor domain.User, in couponsvc.Input) (*domain.Coupon, error)
	Delete(ctx context.Context, id string, actor domain.User) error
}

type ReviewService interface {
	Submit(ctx context.Context, userID, productID string, in reviewsvc.Input) (*domain.Review, bool, error)
	ProductReviews(ctx context.Context, productID string) ([]domain.Review, float64, error)
}

// UserDirectory is the slice of the user repository admin screens need.
type UserDirectory interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type StatsService interface {
	GlobalStats(ctx context.Context) (*orderrepo.Stats, error)
	SellerStats(ctx context.Context, sellerID string) (*orderrepo.Stats, error)
}
