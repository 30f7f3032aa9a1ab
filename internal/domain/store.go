package domain

import "time"

type Store struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CoverImg    string    `json:"coverImg"`
	Description string    `json:"description,omitempty"`
	CategoryID  int64     `json:"categoryId,omitempty"`
	CreatorID   int64     `json:"creatorId"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CoverImg  string    `json:"coverImg,omitempty"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommissionChoice struct {
	Name  string  `json:"name"`
	Extra float64 `json:"extra,omitempty"`
}

type CommissionOption struct {
	Name    string             `json:"name"`
	Choices []CommissionChoice `json:"choices,omitempty"`
	Extra   float64            `json:"extra,omitempty"`
}

type Commission struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Photo       string             `json:"photo,omitempty"`
	Description string             `json:"description,omitempty"`
	Options     []CommissionOption `json:"options,omitempty"`
	StoreID     int64              `json:"storeId"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
