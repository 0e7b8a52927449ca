// Package memstore is an in-memory Store used by the tests and as the
// backend when no MONGO_URI is configured. All mutations run under one
// mutex, so the stock check and decrement are a single critical section.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-backend/models"
)

type Store struct {
	mu        sync.RWMutex
	admins    map[primitive.ObjectID]models.Admin
	suppliers map[primitive.ObjectID]models.Supplier
	products  map[primitive.ObjectID]models.Product
	sales     []models.Sale
}

func New() *Store {
	return &Store{
		admins:    make(map[primitive.ObjectID]models.Admin),
		suppliers: make(map[primitive.ObjectID]models.Supplier),
		products:  make(map[primitive.ObjectID]models.Product),
	}
}

func (s *Store) CreateAdmin(_ context.Context, admin models.Admin) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.admins {
		if a.Email == admin.Email {
			return models.Admin{}, models.ErrDuplicateAccount
		}
	}
	admin.ID = primitive.NewObjectID()
	s.admins[admin.ID] = admin
	return admin, nil
}

func (s *Store) FindAdminByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return models.Admin{}, models.ErrAccountNotFound
}

func (s *Store) FindAdminByID(_ context.Context, id primitive.ObjectID) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[id]
	if !ok {
		return models.Admin{}, models.ErrAccountNotFound
	}
	return a, nil
}

func (s *Store) CreateSupplier(_ context.Context, supplier models.Supplier) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sp := range s.suppliers {
		if sp.Email == supplier.Email {
			return models.Supplier{}, models.ErrDuplicateAccount
		}
	}
	supplier.ID = primitive.NewObjectID()
	s.suppliers[supplier.ID] = supplier
	return supplier, nil
}

func (s *Store) FindSupplierByEmail(_ context.Context, email string) (models.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sp := range s.suppliers {
		if sp.Email == email {
			return sp, nil
		}
	}
	return models.Supplier{}, models.ErrAccountNotFound
}

func (s *Store) FindSupplierByID(_ context.Context, id primitive.ObjectID) (models.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.suppliers[id]
	if !ok {
		return models.Supplier{}, models.ErrAccountNotFound
	}
	return sp, nil
}

func (s *Store) CreateProduct(_ context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Barcode == product.Barcode {
			return models.Product{}, models.ErrDuplicateProduct
		}
	}
	product.ID = primitive.NewObjectID()
	for i := range product.Variants {
		if product.Variants[i].ID.IsZero() {
			product.Variants[i].ID = primitive.NewObjectID()
		}
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	s.products[product.ID] = product
	return copyProduct(product), nil
}

func (s *Store) FindProductByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	return copyProduct(p), nil
}

func (s *Store) FindProductByBarcode(_ context.Context, barcode string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Barcode == barcode {
			return copyProduct(p), nil
		}
	}
	return models.Product{}, models.ErrProductNotFound
}

func (s *Store) ListProducts(_ context.Context) ([]models.ProductWithSupplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProductWithSupplier, 0, len(s.products))
	for _, p := range s.products {
		row := models.ProductWithSupplier{Product: copyProduct(p)}
		if sp, ok := s.suppliers[p.SupplierID]; ok {
			spCopy := sp
			row.Supplier = &spCopy
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Product.CreatedAt.Before(out[j].Product.CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateProduct(_ context.Context, id primitive.ObjectID, update models.UpdateProductInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	if update.Name != "" {
		p.Name = update.Name
	}
	if update.Variants != nil {
		p.Variants = make([]models.Variant, len(update.Variants))
		copy(p.Variants, update.Variants)
		for i := range p.Variants {
			if p.Variants[i].ID.IsZero() {
				p.Variants[i].ID = primitive.NewObjectID()
			}
		}
	}
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return copyProduct(p), nil
}

func (s *Store) SetProductPhoto(_ context.Context, id primitive.ObjectID, photoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	p.PhotoURL = photoURL
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return nil
}

func (s *Store) LowStock(_ context.Context, threshold int) ([]models.LowStockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []models.LowStockItem
	for _, p := range s.products {
		for _, v := range p.Variants {
			if v.Stock < threshold {
				items = append(items, models.LowStockItem{
					ProductName: p.Name,
					Barcode:     p.Barcode,
					VariantName: v.Name,
					Stock:       v.Stock,
				})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Barcode != items[j].Barcode {
			return items[i].Barcode < items[j].Barcode
		}
		return items[i].VariantName < items[j].VariantName
	})
	return items, nil
}

func (s *Store) DecrementStock(_ context.Context, productID primitive.ObjectID, variantIndex, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return models.ErrProductNotFound
	}
	if variantIndex < 0 || variantIndex >= len(p.Variants) {
		return models.ErrVariantNotFound
	}
	if p.Variants[variantIndex].Stock < qty {
		return models.ErrInsufficientStock
	}
	p.Variants[variantIndex].Stock -= qty
	p.UpdatedAt = time.Now()
	s.products[productID] = p
	return nil
}

func (s *Store) IncrementStock(_ context.Context, productID primitive.ObjectID, variantIndex, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return models.ErrProductNotFound
	}
	if variantIndex < 0 || variantIndex >= len(p.Variants) {
		return models.ErrVariantNotFound
	}
	p.Variants[variantIndex].Stock += qty
	p.UpdatedAt = time.Now()
	s.products[productID] = p
	return nil
}

func (s *Store) InsertSale(_ context.Context, sale models.Sale) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale.ID = primitive.NewObjectID()
	s.sales = append(s.sales, sale)
	return sale, nil
}

func (s *Store) ListSales(_ context.Context) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	// newest first
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) FindSaleByID(_ context.Context, id primitive.ObjectID) (models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sale := range s.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return models.Sale{}, models.ErrSaleNotFound
}

func (s *Store) TotalsByPaymentType(_ context.Context) ([]models.PaymentTypeTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[models.PaymentType]float64)
	for _, sale := range s.sales {
		totals[sale.PaymentType] += sale.TotalAmount
	}
	out := make([]models.PaymentTypeTotal, 0, len(totals))
	for pt, total := range totals {
		out = append(out, models.PaymentTypeTotal{PaymentType: pt, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentType < out[j].PaymentType })
	return out, nil
}

func (s *Store) TotalsByDay(_ context.Context) ([]models.DailyTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]float64)
	for _, sale := range s.sales {
		totals[sale.CreatedAt.Format("2006-01-02")] += sale.TotalAmount
	}
	out := make([]models.DailyTotal, 0, len(totals))
	for date, total := range totals {
		out = append(out, models.DailyTotal{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Store) TotalsByMonth(_ context.Context, year int) ([]models.MonthlyTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[int]float64)
	for _, sale := range s.sales {
		if sale.CreatedAt.Year() != year {
			continue
		}
		totals[int(sale.CreatedAt.Month())] += sale.TotalAmount
	}
	out := make([]models.MonthlyTotal, 0, len(totals))
	for month, total := range totals {
		out = append(out, models.MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (s *Store) TotalsByYear(_ context.Context) ([]models.YearlyTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[int]float64)
	for _, sale := range s.sales {
		totals[sale.CreatedAt.Year()] += sale.TotalAmount
	}
	out := make([]models.YearlyTotal, 0, len(totals))
	for year, total := range totals {
		out = append(out, models.YearlyTotal{Year: year, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (s *Store) TotalsByActor(_ context.Context) ([]models.ActorTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		id   primitive.ObjectID
		role models.Role
	}
	sums := make(map[key]*models.ActorTotal)
	for _, sale := range s.sales {
		k := key{sale.SoldBy, sale.SoldByModel}
		t, ok := sums[k]
		if !ok {
			t = &models.ActorTotal{SoldBy: k.id, SoldByModel: k.role}
			sums[k] = t
		}
		t.TotalSales += sale.TotalAmount
		t.TotalQty += sale.Quantity
	}
	out := make([]models.ActorTotal, 0, len(sums))
	for _, t := range sums {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldBy.Hex() < out[j].SoldBy.Hex() })
	return out, nil
}

func (s *Store) TotalsBySupplier(_ context.Context) ([]models.SupplierTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[primitive.ObjectID]*models.SupplierTotal)
	for _, sale := range s.sales {
		p, ok := s.products[sale.ProductID]
		if !ok {
			continue
		}
		t, ok := sums[p.SupplierID]
		if !ok {
			t = &models.SupplierTotal{SupplierID: p.SupplierID}
			sums[p.SupplierID] = t
		}
		t.TotalSales += sale.TotalAmount
		t.TotalQty += sale.Quantity
	}
	out := make([]models.SupplierTotal, 0, len(sums))
	for _, t := range sums {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SupplierID.Hex() < out[j].SupplierID.Hex() })
	return out, nil
}

func copyProduct(p models.Product) models.Product {
	variants := make([]models.Variant, len(p.Variants))
	copy(variants, p.Variants)
	p.Variants = variants
	return p
}
