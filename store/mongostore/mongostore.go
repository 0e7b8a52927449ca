// Package mongostore implements store.Store on MongoDB. The client is
// constructed once at startup and handed to the HTTP layer; there is no
// package-level connection state.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pos-backend/models"
)

// opTimeout bounds every storage call so a dead database surfaces as an
// error instead of a hung request.
const opTimeout = 10 * time.Second

type Store struct {
	client    *mongo.Client
	admins    *mongo.Collection
	suppliers *mongo.Collection
	products  *mongo.Collection
	sales     *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.NewClient(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	s := &Store{
		client:    client,
		admins:    db.Collection("admins"),
		suppliers: db.Collection("suppliers"),
		products:  db.Collection("products"),
		sales:     db.Collection("sales"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Unique indexes back the duplicate-account and duplicate-barcode rules so
// concurrent registrations cannot slip past the existence check.
func (s *Store) ensureIndexes(ctx context.Context) error {
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.admins.Indexes().CreateOne(ctx, emailIdx); err != nil {
		return err
	}
	if _, err := s.suppliers.Indexes().CreateOne(ctx, emailIdx); err != nil {
		return err
	}
	barcodeIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "barcode", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := s.products.Indexes().CreateOne(ctx, barcodeIdx)
	return err
}

func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := s.admins.CountDocuments(ctx, bson.M{"email": admin.Email})
	if err != nil {
		return models.Admin{}, err
	}
	if count > 0 {
		return models.Admin{}, models.ErrDuplicateAccount
	}

	res, err := s.admins.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Admin{}, models.ErrDuplicateAccount
		}
		return models.Admin{}, err
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)
	return admin, nil
}

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var admin models.Admin
	err := s.admins.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return models.Admin{}, models.ErrAccountNotFound
	}
	return admin, err
}

func (s *Store) FindAdminByID(ctx context.Context, id primitive.ObjectID) (models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var admin models.Admin
	err := s.admins.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return models.Admin{}, models.ErrAccountNotFound
	}
	return admin, err
}

func (s *Store) CreateSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := s.suppliers.CountDocuments(ctx, bson.M{"email": supplier.Email})
	if err != nil {
		return models.Supplier{}, err
	}
	if count > 0 {
		return models.Supplier{}, models.ErrDuplicateAccount
	}

	res, err := s.suppliers.InsertOne(ctx, supplier)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Supplier{}, models.ErrDuplicateAccount
		}
		return models.Supplier{}, err
	}
	supplier.ID = res.InsertedID.(primitive.ObjectID)
	return supplier, nil
}

func (s *Store) FindSupplierByEmail(ctx context.Context, email string) (models.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var supplier models.Supplier
	err := s.suppliers.FindOne(ctx, bson.M{"email": email}).Decode(&supplier)
	if err == mongo.ErrNoDocuments {
		return models.Supplier{}, models.ErrAccountNotFound
	}
	return supplier, err
}

func (s *Store) FindSupplierByID(ctx context.Context, id primitive.ObjectID) (models.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var supplier models.Supplier
	err := s.suppliers.FindOne(ctx, bson.M{"_id": id}).Decode(&supplier)
	if err == mongo.ErrNoDocuments {
		return models.Supplier{}, models.ErrAccountNotFound
	}
	return supplier, err
}

func (s *Store) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := s.products.CountDocuments(ctx, bson.M{"barcode": product.Barcode})
	if err != nil {
		return models.Product{}, err
	}
	if count > 0 {
		return models.Product{}, models.ErrDuplicateProduct
	}

	for i := range product.Variants {
		if product.Variants[i].ID.IsZero() {
			product.Variants[i].ID = primitive.NewObjectID()
		}
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := s.products.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, models.ErrDuplicateProduct
		}
		return models.Product{}, err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (s *Store) FindProductByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, models.ErrProductNotFound
	}
	return product, err
}

func (s *Store) FindProductByBarcode(ctx context.Context, barcode string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"barcode": barcode}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, models.ErrProductNotFound
	}
	return product, err
}

func (s *Store) ListProducts(ctx context.Context) ([]models.ProductWithSupplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "suppliers"},
			{Key: "localField", Value: "supplier"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "supplier_doc"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$supplier_doc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
	}

	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.ProductWithSupplier
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id primitive.ObjectID, update models.UpdateProductInput) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := s.FindProductByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != "" {
		product.Name = update.Name
		set["name"] = update.Name
	}
	if update.Variants != nil {
		for i := range update.Variants {
			if update.Variants[i].ID.IsZero() {
				update.Variants[i].ID = primitive.NewObjectID()
			}
		}
		product.Variants = update.Variants
		set["variants"] = update.Variants
	}

	if _, err := s.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *Store) SetProductPhoto(ctx context.Context, id primitive.ObjectID, photoURL string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photourl": photoURL, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (s *Store) LowStock(ctx context.Context, threshold int) ([]models.LowStockItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$variants"}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "variants.stock", Value: bson.D{{Key: "$lt", Value: threshold}}}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "productName", Value: "$name"},
			{Key: "barcode", Value: 1},
			{Key: "variantName", Value: "$variants.name"},
			{Key: "stock", Value: "$variants.stock"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "barcode", Value: 1}, {Key: "variantName", Value: 1}}}},
	}

	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []struct {
		ProductName string `bson:"productName"`
		Barcode     string `bson:"barcode"`
		VariantName string `bson:"variantName"`
		Stock       int    `bson:"stock"`
	}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	out := make([]models.LowStockItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.LowStockItem(it))
	}
	return out, nil
}

// DecrementStock runs the stock check and decrement as one conditional
// update, so two concurrent sells can never both pass the check against
// the same stock value.
func (s *Store) DecrementStock(ctx context.Context, productID primitive.ObjectID, variantIndex, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	field := fmt.Sprintf("variants.%d.stock", variantIndex)
	filter := bson.M{"_id": productID, field: bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{field: -qty}}

	res, err := s.products.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: tell a missing product or variant apart from a
	// plain stock shortage.
	product, err := s.FindProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if variantIndex < 0 || variantIndex >= len(product.Variants) {
		return models.ErrVariantNotFound
	}
	return models.ErrInsufficientStock
}

func (s *Store) IncrementStock(ctx context.Context, productID primitive.ObjectID, variantIndex, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	field := fmt.Sprintf("variants.%d.stock", variantIndex)
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$inc": bson.M{field: qty}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (s *Store) InsertSale(ctx context.Context, sale models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.sales.InsertOne(ctx, sale)
	if err != nil {
		return models.Sale{}, err
	}
	sale.ID = res.InsertedID.(primitive.ObjectID)
	return sale, nil
}

func (s *Store) ListSales(ctx context.Context) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.sales.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Store) FindSaleByID(ctx context.Context, id primitive.ObjectID) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var sale models.Sale
	err := s.sales.FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if err == mongo.ErrNoDocuments {
		return models.Sale{}, models.ErrSaleNotFound
	}
	return sale, err
}
