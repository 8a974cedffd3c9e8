package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tshirt-shop/models"
)

const opTimeout = 5 * time.Second

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func insertedID(res *mongo.InsertOneResult) InsertResult {
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return InsertResult{InsertedID: &id}
	}
	return InsertResult{}
}

func updateResult(res *mongo.UpdateResult) UpdateResult {
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

// NewUsers returns the mongo-backed users gateway.
func NewUsers(db *mongo.Database) Users {
	return &mongoUsers{col: db.Collection("users")}
}

type mongoUsers struct {
	col *mongo.Collection
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) SearchByEmail(ctx context.Context, term string) ([]models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if term != "" {
		filter = bson.M{"email": bson.M{"$regex": term, "$options": "i"}}
	}

	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	return s.SearchByEmail(ctx, "")
}

func (s *mongoUsers) InsertIfAbsent(ctx context.Context, user *models.User) (InsertResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	err := s.col.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return InsertResult{}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return InsertResult{}, err
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return InsertResult{}, err
	}
	return insertedID(res), nil
}

func (s *mongoUsers) SetRole(ctx context.Context, id primitive.ObjectID, role string) (UpdateResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, email, name, profilePic string) (UpdateResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": name, "profilePic": profilePic}}
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return UpdateResult{}, err
	}
	return updateResult(res), nil
}

// NewCarts returns the mongo-backed carts gateway.
func NewCarts(db *mongo.Database) Carts {
	return &mongoCarts{col: db.Collection("carts")}
}

type mongoCarts struct {
	col *mongo.Collection
}

func (s *mongoCarts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var item models.CartItem
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *mongoCarts) FindByUser(ctx context.Context, email string) ([]models.CartItem, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *mongoCarts) InsertIfAbsent(ctx context.Context, item *models.CartItem) (InsertResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"userEmail": item.UserEmail, "tShirtId": item.TShirtID}
	err := s.col.FindOne(ctx, filter).Err()
	if err == nil {
		return InsertResult{}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return InsertResult{}, err
	}

	if item.Status == "" {
		item.Status = models.CartStatusPending
	}
	res, err := s.col.InsertOne(ctx, item)
	if err != nil {
		return InsertResult{}, err
	}
	return insertedID(res), nil
}

func (s *mongoCarts) SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (UpdateResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (s *mongoCarts) Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (s *mongoCarts) DeleteByUser(ctx context.Context, email string) (DeleteResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.DeleteMany(ctx, bson.M{"userEmail": email})
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// NewProducts returns the mongo-backed products gateway.
func NewProducts(db *mongo.Database) Products {
	return &mongoProducts{col: db.Collection("tShirts")}
}

type mongoProducts struct {
	col *mongo.Collection
}

func (s *mongoProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *mongoProducts) Find(ctx context.Context, sellerEmail string) ([]models.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if sellerEmail != "" {
		filter = bson.M{"sellerEmail": sellerEmail}
	}

	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProducts) Insert(ctx context.Context, product *models.Product) (InsertResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return InsertResult{}, err
	}
	return insertedID(res), nil
}

func (s *mongoProducts) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (UpdateResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (s *mongoProducts) Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// NewPayments returns the mongo-backed payments gateway.
func NewPayments(db *mongo.Database) Payments {
	return &mongoPayments{col: db.Collection("payments")}
}

type mongoPayments struct {
	col *mongo.Collection
}

func (s *mongoPayments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var payment models.Payment
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *mongoPayments) FindBySeller(ctx context.Context, sellerEmail string) ([]models.Payment, error) {
	return s.find(ctx, bson.M{"sellerEmail": sellerEmail})
}

func (s *mongoPayments) Find(ctx context.Context, userEmail string) ([]models.Payment, error) {
	filter := bson.M{}
	if userEmail != "" {
		filter = bson.M{"userEmail": userEmail}
	}
	return s.find(ctx, filter)
}

func (s *mongoPayments) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
