package models

import (
	"time"
)

// Role values accepted for User.Role.
const (
	RoleProducer      = "producer"
	RoleOfficial      = "official"
	RoleBuyer         = "buyer"
	RoleAdministrator = "administrator"
)

func ValidRole(role string) bool {
	switch role {
	case RoleProducer, RoleOfficial, RoleBuyer, RoleAdministrator:
		return true
	}
	return false
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string    `gorm:"not null;index"             json:"productName"`
	Category    string    `gorm:"not null;index"             json:"productCategory"`
	Quantity    int       `gorm:"not null;check:quantity>=0" json:"productQuantity"`
	Price       float64   `gorm:"not null"                   json:"productPrice"`
	ImageURL    string    `json:"productImg"`
	Description string    `json:"productDescription"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	Role         string    `gorm:"not null"                 json:"role"`
	PasswordHash string    `json:"-"`
	Age          string    `json:"age,omitempty"`
	Region       string    `json:"region,omitempty"`
	FarmSize     string    `json:"farmSize,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null"           json:"productId"`
	Author    string    `gorm:"not null"                 json:"user"`
	Text      string    `gorm:"not null"                 json:"comment"`
	CreatedAt time.Time `json:"date"`
}

const OrderStatusPending = "pending"

type Order struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference  string      `gorm:"unique;not null"          json:"reference"`
	BuyerEmail string      `gorm:"index;not null"           json:"email"`
	Status     string      `gorm:"not null"                 json:"status"`
	TotalPrice float64     `gorm:"not null"                 json:"totalPrice"`
	Items      []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint    `gorm:"index;not null"            json:"order_id"`
	ProductID uint    `gorm:"not null"                  json:"productId"`
	Quantity  int     `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice float64 `gorm:"not null"                  json:"price"`
	LineTotal float64 `gorm:"not null"                  json:"lineTotal"`
}

type BlogPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"             json:"id"`
	Title     string    `gorm:"not null"                             json:"title"`
	Author    string    `gorm:"not null"                             json:"author"`
	Body      string    `gorm:"not null"                             json:"fullDesc"`
	Thumbnail string    `json:"thumbnail"`
	Likes     int       `gorm:"not null;default:0;check:likes>=0"    json:"likes"`
	Dislikes  int       `gorm:"not null;default:0;check:dislikes>=0" json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Vote directions stored in BlogVote.Direction.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// BlogVote is the per-voter ledger behind the like/dislike counters.
// One row per (post, voter) pair; the row is removed when a vote is
// toggled off.
type BlogVote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"            json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_post_voter;not null" json:"postId"`
	VoterID   string    `gorm:"uniqueIndex:idx_post_voter;not null" json:"voterId"`
	Direction string    `gorm:"not null"                            json:"direction"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
