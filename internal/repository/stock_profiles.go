// Package repository provides data access for stock profiles.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StockProfileFields holds the editable attributes of a stock profile.
type StockProfileFields struct {
	Name        string  `bson:"name" json:"name"`
	StockLength float64 `bson:"stock_length" json:"stock_length"`
	LengthUnit  string  `bson:"length_unit" json:"length_unit"`
	KerfWidth   float64 `bson:"kerf_width" json:"kerf_width"`
	KerfUnit    string  `bson:"kerf_unit" json:"kerf_unit"`
	MaxBars     int     `bson:"max_bars" json:"max_bars"`
}

// StockProfileConfig represents a stock profile document. The active profile
// supplies default stock parameters for calculation requests that omit them.
type StockProfileConfig struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name        string                 `bson:"name" json:"name"`
	StockLength float64                `bson:"stock_length" json:"stock_length"`
	LengthUnit  string                 `bson:"length_unit" json:"length_unit"`
	KerfWidth   float64                `bson:"kerf_width" json:"kerf_width"`
	KerfUnit    string                 `bson:"kerf_unit" json:"kerf_unit"`
	MaxBars     int                    `bson:"max_bars" json:"max_bars"`
	Active      bool                   `bson:"active" json:"active"`
	Version     int                    `bson:"version" json:"version"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at" json:"updated_at"`
	CreatedBy   string                 `bson:"created_by,omitempty" json:"created_by,omitempty"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// StockProfilesRepository provides methods for stock profile operations.
type StockProfilesRepository struct {
	collection *mongo.Collection
}

// NewStockProfilesRepository creates a new stock profiles repository.
func NewStockProfilesRepository(db *MongoDB) *StockProfilesRepository {
	return &StockProfilesRepository{
		collection: db.StockProfiles,
	}
}

// GetActive returns the active stock profile.
func (r *StockProfilesRepository) GetActive(ctx context.Context) (*StockProfileConfig, error) {
	var config StockProfileConfig
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&config)
	if err == mongo.ErrNoDocuments {
		return nil, nil // No active profile found
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Create creates a new stock profile and makes it the active one.
func (r *StockProfilesRepository) Create(ctx context.Context, fields StockProfileFields, createdBy string) (*StockProfileConfig, error) {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	config := StockProfileConfig{
		ID:          primitive.NewObjectID(),
		Name:        fields.Name,
		StockLength: fields.StockLength,
		LengthUnit:  fields.LengthUnit,
		KerfWidth:   fields.KerfWidth,
		KerfUnit:    fields.KerfUnit,
		MaxBars:     fields.MaxBars,
		Active:      true,
		Version:     1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		CreatedBy:   createdBy,
		Metadata:    make(map[string]interface{}),
	}

	_, err = r.collection.InsertOne(ctx, config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// Update updates an existing stock profile.
func (r *StockProfilesRepository) Update(ctx context.Context, id primitive.ObjectID, fields StockProfileFields, updatedBy string) (*StockProfileConfig, error) {
	var current StockProfileConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"name":         fields.Name,
			"stock_length": fields.StockLength,
			"length_unit":  fields.LengthUnit,
			"kerf_width":   fields.KerfWidth,
			"kerf_unit":    fields.KerfUnit,
			"max_bars":     fields.MaxBars,
			"updated_at":   time.Now(),
			"version":      current.Version + 1,
		},
	}
	if updatedBy != "" {
		if setDoc, ok := update["$set"].(bson.M); ok {
			setDoc["updated_by"] = updatedBy
		}
	}

	var config StockProfileConfig
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// List returns stock profiles, newest first.
func (r *StockProfilesRepository) List(ctx context.Context, limit int) ([]StockProfileConfig, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var configs []StockProfileConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}

	return configs, nil
}

// Activate marks the given profile active and deactivates every other one.
func (r *StockProfilesRepository) Activate(ctx context.Context, id primitive.ObjectID) (*StockProfileConfig, error) {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "_id": bson.M{"$ne": id}},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	var config StockProfileConfig
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": true, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
