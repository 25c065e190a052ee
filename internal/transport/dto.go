package transport

import "github.com/agrolink/farmmarket/internal/models"

type CartLine struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type CheckoutRequest struct {
	CartItems []CartLine `json:"cartItems"`
	UserEmail string     `json:"userEmail"`
}

type ProductPage struct {
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"totalPages"`
	Products   []models.Product `json:"products"`
}

type OrderPage struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
	Orders     []models.Order `json:"orders"`
}

type AddCommentRequest struct {
	ProductID uint   `json:"productId"`
	User      string `json:"user"`
	Comment   string `json:"comment"`
}

type CommentThread struct {
	ProductID uint             `json:"productId"`
	Comments  []models.Comment `json:"comments"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
	Age      string `json:"age,omitempty"`
	Region   string `json:"region,omitempty"`
	FarmSize string `json:"farmSize,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type VerifyUserRequest struct {
	Email string `json:"email"`
}

type VerifyUserResponse struct {
	Exists bool         `json:"exists"`
	User   *models.User `json:"user,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken,omitempty"`
}

type CreateBlogPostRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	FullDesc  string `json:"fullDesc"`
	Thumbnail string `json:"thumbnail"`
}

// BlogPostView decorates a post with the requesting voter's current
// vote direction ("like", "dislike" or empty).
type BlogPostView struct {
	models.BlogPost
	UserVote string `json:"userVote"`
}
