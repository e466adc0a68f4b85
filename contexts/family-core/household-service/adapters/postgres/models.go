package postgres

import (
	"time"

	"kinkeep/contexts/family-core/household-service/domain/entities"
)

type choreModel struct {
	ChoreID    string `gorm:"primaryKey;column:chore_id"`
	TenantID   string `gorm:"column:tenant_id;index:ix_chores_tenant"`
	Title      string `gorm:"column:title"`
	Notes      string `gorm:"column:notes"`
	AssigneeID string `gorm:"column:assignee_id"`
	DueDate    *time.Time
	Done       bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (choreModel) TableName() string { return "chores" }

type keyDateModel struct {
	KeyDateID string `gorm:"primaryKey;column:key_date_id"`
	TenantID  string `gorm:"column:tenant_id;index:ix_key_dates_tenant"`
	Title     string `gorm:"column:title"`
	Date      time.Time
	Annual    bool
	Notes     string `gorm:"column:notes"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (keyDateModel) TableName() string { return "key_dates" }

type wishlistItemModel struct {
	ItemID     string `gorm:"primaryKey;column:item_id"`
	TenantID   string `gorm:"column:tenant_id;index:ix_wishlist_tenant"`
	OwnerID    string `gorm:"column:owner_id"`
	Title      string `gorm:"column:title"`
	URL        string `gorm:"column:url"`
	PriceCents int64  `gorm:"column:price_cents"`
	Claimed    bool
	ClaimedBy  string `gorm:"column:claimed_by"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (wishlistItemModel) TableName() string { return "wishlist_items" }

// Models lists the tables this adapter migrates.
func Models() []any {
	return []any{&choreModel{}, &keyDateModel{}, &wishlistItemModel{}}
}

func choreFromModel(m choreModel) entities.Chore {
	return entities.Chore{
		ChoreID:    m.ChoreID,
		TenantID:   m.TenantID,
		Title:      m.Title,
		Notes:      m.Notes,
		AssigneeID: m.AssigneeID,
		DueDate:    m.DueDate,
		Done:       m.Done,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func choreToModel(chore entities.Chore) choreModel {
	return choreModel{
		ChoreID:    chore.ChoreID,
		TenantID:   chore.TenantID,
		Title:      chore.Title,
		Notes:      chore.Notes,
		AssigneeID: chore.AssigneeID,
		DueDate:    chore.DueDate,
		Done:       chore.Done,
		CreatedAt:  chore.CreatedAt,
		UpdatedAt:  chore.UpdatedAt,
	}
}

func keyDateFromModel(m keyDateModel) entities.KeyDate {
	return entities.KeyDate{
		KeyDateID: m.KeyDateID,
		TenantID:  m.TenantID,
		Title:     m.Title,
		Date:      m.Date,
		Annual:    m.Annual,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func keyDateToModel(date entities.KeyDate) keyDateModel {
	return keyDateModel{
		KeyDateID: date.KeyDateID,
		TenantID:  date.TenantID,
		Title:     date.Title,
		Date:      date.Date,
		Annual:    date.Annual,
		Notes:     date.Notes,
		CreatedAt: date.CreatedAt,
		UpdatedAt: date.UpdatedAt,
	}
}

func wishlistItemFromModel(m wishlistItemModel) entities.WishlistItem {
	return entities.WishlistItem{
		ItemID:     m.ItemID,
		TenantID:   m.TenantID,
		OwnerID:    m.OwnerID,
		Title:      m.Title,
		URL:        m.URL,
		PriceCents: m.PriceCents,
		Claimed:    m.Claimed,
		ClaimedBy:  m.ClaimedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func wishlistItemToModel(item entities.WishlistItem) wishlistItemModel {
	return wishlistItemModel{
		ItemID:     item.ItemID,
		TenantID:   item.TenantID,
		OwnerID:    item.OwnerID,
		Title:      item.Title,
		URL:        item.URL,
		PriceCents: item.PriceCents,
		Claimed:    item.Claimed,
		ClaimedBy:  item.ClaimedBy,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
