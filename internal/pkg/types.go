package pkg

import "time"

// Account holds the credentials side of a user. The profile lives in a
// separate User document keyed by AccountID, so a failed profile write
// leaves an account without a profile (never the other way around).
type Account struct {
	UUID      string    `clover:"_id" json:"uuid"`
	Email     string    `clover:"email" json:"email"`
	Password  string    `clover:"password" json:"-"`
	Name      string    `clover:"name" json:"name"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
}

type User struct {
	UUID      string    `clover:"_id" json:"uuid"`
	AccountID string    `clover:"account_id" json:"account_id"`
	Name      string    `clover:"name" json:"name"`
	Username  string    `clover:"username" json:"username"`
	Email     string    `clover:"email" json:"email"`
	Bio       string    `clover:"bio" json:"bio"`
	ImageURL  string    `clover:"image_url" json:"image_url"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
}

// Post stores the image as an id/URL pair. Both fields always refer to the
// same stored asset; the mutation workflow never writes one without the
// other.
type Post struct {
	UUID        string    `clover:"_id" json:"uuid"`
	Creator     string    `clover:"creator" json:"creator"`
	Caption     string    `clover:"caption" json:"caption"`
	ImageID     string    `clover:"image_id" json:"image_id"`
	ImageURL    string    `clover:"image_url" json:"image_url"`
	Location    string    `clover:"location" json:"location"`
	Tags        []string  `clover:"tags" json:"tags"`
	Rating      int64     `clover:"rating" json:"rating"`
	CoffeeType  string    `clover:"coffee_type" json:"coffee_type"`
	CoffeeName  string    `clover:"coffee_name" json:"coffee_name"`
	BrandID     string    `clover:"brand_id" json:"brand_id,omitempty"`
	EquipmentID string    `clover:"equipment_id" json:"equipment_id,omitempty"`
	Likes       []string  `clover:"likes" json:"likes"`
	CreatedAt   time.Time `clover:"created_at" json:"created_at"`
	UpdatedAt   time.Time `clover:"updated_at" json:"updated_at"`
}

type Session struct {
	UUID      string    `clover:"_id" json:"uuid"`
	AccountID string    `clover:"account_id" json:"account_id"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
	ExpiresAt time.Time `clover:"expires_at" json:"expires_at"`
}

// Save links a user to a post they bookmarked.
type Save struct {
	UUID      string    `clover:"_id" json:"uuid"`
	PostID    string    `clover:"post_id" json:"post_id"`
	UserID    string    `clover:"user_id" json:"user_id"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
}

// Reference is a selectable brand or brew-equipment entry.
type Reference struct {
	UUID      string    `clover:"_id" json:"uuid"`
	Name      string    `clover:"name" json:"name"`
	LogoURL   string    `clover:"logo_url" json:"logo_url"`
	CreatedAt time.Time `clover:"created_at" json:"created_at"`
}
