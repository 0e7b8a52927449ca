package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pos-backend/models"
)

func (s *Store) TotalsByPaymentType(ctx context.Context) ([]models.PaymentTypeTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$paymentType"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    models.PaymentType `bson:"_id"`
		Total float64            `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.PaymentTypeTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.PaymentTypeTotal{PaymentType: r.ID, Total: r.Total})
	}
	return out, nil
}

func (s *Store) TotalsByDay(ctx context.Context) ([]models.DailyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string  `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.DailyTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DailyTotal{Date: r.ID, Total: r.Total})
	}
	return out, nil
}

func (s *Store) TotalsByMonth(ctx context.Context, year int) ([]models.MonthlyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "createdAt", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lt", Value: to},
		}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$month", Value: "$createdAt"}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    int     `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.MonthlyTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.MonthlyTotal{Month: r.ID, Total: r.Total})
	}
	return out, nil
}

func (s *Store) TotalsByYear(ctx context.Context) ([]models.YearlyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$year", Value: "$createdAt"}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    int     `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.YearlyTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.YearlyTotal{Year: r.ID, Total: r.Total})
	}
	return out, nil
}

func (s *Store) TotalsByActor(ctx context.Context) ([]models.ActorTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "soldBy", Value: "$soldBy"},
				{Key: "soldByModel", Value: "$soldByModel"},
			}},
			{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
			{Key: "totalQty", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.soldBy", Value: 1}}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			SoldBy      primitive.ObjectID `bson:"soldBy"`
			SoldByModel models.Role        `bson:"soldByModel"`
		} `bson:"_id"`
		TotalSales float64 `bson:"totalSales"`
		TotalQty   int     `bson:"totalQty"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.ActorTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ActorTotal{
			SoldBy:      r.ID.SoldBy,
			SoldByModel: r.ID.SoldByModel,
			TotalSales:  r.TotalSales,
			TotalQty:    r.TotalQty,
		})
	}
	return out, nil
}

func (s *Store) TotalsBySupplier(ctx context.Context) ([]models.SupplierTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "product"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product_doc"},
		}}},
		bson.D{{Key: "$unwind", Value: "$product_doc"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_doc.supplier"},
			{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
			{Key: "totalQty", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID         primitive.ObjectID `bson:"_id"`
		TotalSales float64            `bson:"totalSales"`
		TotalQty   int                `bson:"totalQty"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.SupplierTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.SupplierTotal{
			SupplierID: r.ID,
			TotalSales: r.TotalSales,
			TotalQty:   r.TotalQty,
		})
	}
	return out, nil
}
