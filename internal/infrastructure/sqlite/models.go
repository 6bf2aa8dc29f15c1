package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// Modelos de tabla. Position conserva el orden del documento; los timestamps los fija el dominio.

type userModel struct {
	ID        string `gorm:"primaryKey"`
	Position  int    `gorm:"not null"`
	Username  string `gorm:"not null;index"`
	Password  string
	Role      string `gorm:"not null"`
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (userModel) TableName() string { return "users" }

type categoryModel struct {
	ID          string `gorm:"primaryKey"`
	Position    int    `gorm:"not null"`
	Name        string `gorm:"not null"`
	Description string
}

func (categoryModel) TableName() string { return "categories" }

type productModel struct {
	ID          string `gorm:"primaryKey"`
	Position    int    `gorm:"not null"`
	Name        string `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:text;not null"`
	CostPrice   decimal.Decimal `gorm:"type:text;not null"`
	Quantity    int
	Category    string `gorm:"index"`
	Size        string
	Color       string
	Image       string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (productModel) TableName() string { return "products" }

type saleModel struct {
	ID            string          `gorm:"primaryKey"`
	Position      int             `gorm:"not null"`
	TotalAmount   decimal.Decimal `gorm:"type:text;not null"`
	PaymentMethod string          `gorm:"not null"`
	CustomerName  string
	EmployeeID    string
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;index"`
	Items         []saleItemModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

func (saleModel) TableName() string { return "sales" }

type saleItemModel struct {
	ID          uint   `gorm:"primaryKey"`
	SaleID      string `gorm:"not null;index"`
	Position    int    `gorm:"not null"`
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal `gorm:"type:text;not null"`
	Total       decimal.Decimal `gorm:"type:text;not null"`
}

func (saleItemModel) TableName() string { return "sale_items" }

// metaModel guarda valores sueltos del documento (lastSave).
type metaModel struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (metaModel) TableName() string { return "meta" }

// ── mapeos ────────────────────────────────────────────────────────────────────

func toUserModel(u entity.User, pos int) userModel {
	return userModel{ID: u.ID, Position: pos, Username: u.Username, Password: u.Password, Role: u.Role,
		Name: u.Name, Email: u.Email, Phone: u.Phone, IsActive: u.IsActive,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func (m userModel) toEntity() entity.User {
	return entity.User{ID: m.ID, Username: m.Username, Password: m.Password, Role: m.Role,
		Name: m.Name, Email: m.Email, Phone: m.Phone, IsActive: m.IsActive,
		CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC()}
}

func toCategoryModel(c entity.Category, pos int) categoryModel {
	return categoryModel{ID: c.ID, Position: pos, Name: c.Name, Description: c.Description}
}

func (m categoryModel) toEntity() entity.Category {
	return entity.Category{ID: m.ID, Name: m.Name, Description: m.Description}
}

func toProductModel(p entity.Product, pos int) productModel {
	return productModel{ID: p.ID, Position: pos, Name: p.Name, Description: p.Description,
		Price: p.Price, CostPrice: p.CostPrice, Quantity: p.Quantity, Category: p.Category,
		Size: p.Size, Color: p.Color, Image: p.Image, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func (m productModel) toEntity() entity.Product {
	return entity.Product{ID: m.ID, Name: m.Name, Description: m.Description,
		Price: m.Price, CostPrice: m.CostPrice, Quantity: m.Quantity, Category: m.Category,
		Size: m.Size, Color: m.Color, Image: m.Image,
		CreatedAt: m.CreatedAt.UTC(), UpdatedAt: m.UpdatedAt.UTC()}
}

func toSaleModel(s entity.Sale, pos int) saleModel {
	items := make([]saleItemModel, len(s.Items))
	for i, it := range s.Items {
		items[i] = saleItemModel{SaleID: s.ID, Position: i, ProductID: it.ProductID,
			ProductName: it.ProductName, Quantity: it.Quantity, Price: it.Price, Total: it.Total}
	}
	return saleModel{ID: s.ID, Position: pos, TotalAmount: s.TotalAmount, PaymentMethod: s.PaymentMethod,
		CustomerName: s.CustomerName, EmployeeID: s.EmployeeID, CreatedAt: s.CreatedAt, Items: items}
}

func (m saleModel) toEntity() entity.Sale {
	items := make([]entity.SaleItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = entity.SaleItem{ProductID: it.ProductID, ProductName: it.ProductName,
			Quantity: it.Quantity, Price: it.Price, Total: it.Total}
	}
	return entity.Sale{ID: m.ID, Items: items, TotalAmount: m.TotalAmount, PaymentMethod: m.PaymentMethod,
		CustomerName: m.CustomerName, EmployeeID: m.EmployeeID, CreatedAt: m.CreatedAt.UTC()}
}
