package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ProductDigital = "digital"
	ProductPrint   = "print"
	ProductMixed   = "mixed"
)

// Order statuses form a closed set; handlers reject anything else.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type PhotoMetadata struct {
	Width          int        `bson:"width,omitempty" json:"width,omitempty"`
	Height         int        `bson:"height,omitempty" json:"height,omitempty"`
	OriginalWidth  int        `bson:"original_width,omitempty" json:"originalWidth,omitempty"`
	OriginalHeight int        `bson:"original_height,omitempty" json:"originalHeight,omitempty"`
	SizeKB         float64    `bson:"size_kb,omitempty" json:"sizeKB,omitempty"`
	OriginalSizeKB float64    `bson:"original_size_kb,omitempty" json:"originalSizeKB,omitempty"`
	Format         string     `bson:"format,omitempty" json:"format,omitempty"`
	Location       string     `bson:"location,omitempty" json:"location,omitempty"`
	Photographer   string     `bson:"photographer,omitempty" json:"photographer,omitempty"`
	DateTaken      *time.Time `bson:"date_taken,omitempty" json:"dateTaken,omitempty"`
}

// Photo references its stored asset through StorageKey + Provider; the pair
// is what the upload layer needs to delete the asset later. Neither field
// is exposed over the API.
type Photo struct {
	ID           string        `bson:"_id" json:"id"`
	Title        string        `bson:"title" json:"title"`
	ImageURL     string        `bson:"image_url" json:"imageUrl"`
	ThumbnailURL string        `bson:"thumbnail_url" json:"thumbnailUrl"`
	StorageKey   string        `bson:"storage_key" json:"-"`
	Provider     string        `bson:"provider" json:"-"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
	Tags         []string      `bson:"tags,omitempty" json:"tags"`
	IsFeatured   bool          `bson:"is_featured" json:"isFeatured"`
	IsHidden     bool          `bson:"is_hidden" json:"isHidden"`
	Metadata     PhotoMetadata `bson:"metadata" json:"metadata"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}

type Album struct {
	ID            string    `bson:"_id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	CoverImageURL string    `bson:"cover_image_url" json:"coverImageUrl"`
	PhotoIDs      []string  `bson:"photo_ids,omitempty" json:"photos"`
	Tags          []string  `bson:"tags,omitempty" json:"tags"`
	IsFeatured    bool      `bson:"is_featured" json:"isFeatured"`
	IsHidden      bool      `bson:"is_hidden" json:"isHidden"`
	CreatedBy     string    `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

type DigitalDownload struct {
	FileURL  string `bson:"file_url,omitempty" json:"fileUrl,omitempty"`
	FileSize int64  `bson:"file_size,omitempty" json:"fileSize,omitempty"`
	Format   string `bson:"format,omitempty" json:"format,omitempty"`
}

type PrintOptions struct {
	Sizes           []string `bson:"sizes,omitempty" json:"sizes,omitempty"`
	PaperTypes      []string `bson:"paper_types,omitempty" json:"paperTypes,omitempty"`
	FrameOptions    []string `bson:"frame_options,omitempty" json:"frameOptions,omitempty"`
	ShippingDetails string   `bson:"shipping_details,omitempty" json:"shippingDetails,omitempty"`
}

type DisplayFlags struct {
	IsFeatured bool `bson:"is_featured" json:"isFeatured"`
	IsLatest   bool `bson:"is_latest" json:"isLatest"`
	IsOnSale   bool `bson:"is_on_sale" json:"isOnSale"`
}

type Product struct {
	ID              string          `bson:"_id" json:"id"`
	Name            string          `bson:"name" json:"name"`
	Description     string          `bson:"description" json:"description"`
	Price           float64         `bson:"price" json:"price"`
	Category        string          `bson:"category" json:"category"`
	Stock           int             `bson:"stock" json:"stock"`
	ThumbnailURL    string          `bson:"thumbnail_url" json:"thumbnailUrl"`
	PhotoIDs        []string        `bson:"photo_ids,omitempty" json:"photos,omitempty"`
	Tags            []string        `bson:"tags,omitempty" json:"tags"`
	DisplayFlags    DisplayFlags    `bson:"display_flags" json:"displayFlags"`
	Type            string          `bson:"type" json:"type"`
	DigitalDownload DigitalDownload `bson:"digital_download,omitempty" json:"digitalDownload,omitempty"`
	PrintOptions    PrintOptions    `bson:"print_options,omitempty" json:"printOptions,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

type SelectedOptions struct {
	Size        string `bson:"size,omitempty" json:"size,omitempty"`
	PaperType   string `bson:"paper_type,omitempty" json:"paperType,omitempty"`
	FrameOption string `bson:"frame_option,omitempty" json:"frameOption,omitempty"`
}

type CartItem struct {
	ProductID       string          `bson:"product_id" json:"productId"`
	Quantity        int             `bson:"quantity" json:"quantity"`
	Type            string          `bson:"type" json:"type"`
	SelectedOptions SelectedOptions `bson:"selected_options,omitempty" json:"selectedOptions,omitempty"`
}

// Cart is created lazily, one per user, and never deleted; emptying it
// means writing an empty items slice.
type Cart struct {
	ID        string     `bson:"_id" json:"id"`
	UserID    string     `bson:"user_id" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ProductID       string          `bson:"product_id" json:"productId"`
	Quantity        int             `bson:"quantity" json:"quantity"`
	UnitPrice       float64         `bson:"unit_price" json:"unitPrice"`
	SelectedOptions SelectedOptions `bson:"selected_options,omitempty" json:"selectedOptions,omitempty"`
	DownloadLink    string          `bson:"download_link,omitempty" json:"downloadLink,omitempty"`
}

type PaymentInfo struct {
	PaymentID string     `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	Method    string     `bson:"method,omitempty" json:"method,omitempty"`
	PaidAt    *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}

type ShippingAddress struct {
	FullName string `bson:"full_name,omitempty" json:"fullName,omitempty"`
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Zip      string `bson:"zip,omitempty" json:"zip,omitempty"`
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
}

type Order struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"user_id" json:"userId"`
	Items           []OrderItem     `bson:"items" json:"items"`
	Type            string          `bson:"type" json:"type"`
	TotalPrice      float64         `bson:"total_price" json:"totalPrice"`
	Status          string          `bson:"status" json:"status"`
	FreeShipping    bool            `bson:"free_shipping" json:"freeShipping"`
	PaymentInfo     PaymentInfo     `bson:"payment_info,omitempty" json:"paymentInfo,omitempty"`
	ShippingAddress ShippingAddress `bson:"shipping_address,omitempty" json:"shippingAddress,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}
