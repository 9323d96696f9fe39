package mongo

import (
	"context"
	"errors"
	"time"

	"socialfeed/internal/core/errs"
	"socialfeed/internal/core/post"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const PostsCollection = "posts"

// PostRepositoryMongo پست‌ها به صورت سند؛ کامنت‌ها و لایک‌ها داخل سند پست
type PostRepositoryMongo struct {
	Collection *mongo.Collection
}

func NewPostRepositoryMongo(db *mongo.Database) *PostRepositoryMongo {
	return &PostRepositoryMongo{Collection: db.Collection(PostsCollection)}
}

// EnsureIndexes ایندکس‌های لازم برای فید و فیلتر لایک
func (r *PostRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
	})
	return err
}

func (r *PostRepositoryMongo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if _, err := r.Collection.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepositoryMongo) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PostRepositoryMongo) Delete(ctx context.Context, id string) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PostRepositoryMongo) AppendComment(ctx context.Context, postID string, c post.Comment) (*post.Post, error) {
	update := bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": postID}, update)
}

// AddLike فقط وقتی کاربر در likes نیست آن را اضافه می‌کند
func (r *PostRepositoryMongo) AddLike(ctx context.Context, postID, userID string) (*post.Post, bool, error) {
	filter, update := likeUpdate(postID, userID)
	return r.conditionalUpdate(ctx, postID, filter, update)
}

func (r *PostRepositoryMongo) RemoveLike(ctx context.Context, postID, userID string) (*post.Post, bool, error) {
	filter, update := unlikeUpdate(postID, userID)
	return r.conditionalUpdate(ctx, postID, filter, update)
}

func (r *PostRepositoryMongo) FindAll(ctx context.Context) ([]*post.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *PostRepositoryMongo) FindByUserIDs(ctx context.Context, userIDs []string) ([]*post.Post, error) {
	if len(userIDs) == 0 {
		return []*post.Post{}, nil
	}
	return r.find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
}

func (r *PostRepositoryMongo) FindByIDs(ctx context.Context, ids []string) ([]*post.Post, error) {
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// FindPage صفحه‌بندی بر اساس _id؛ فقط فیلدهای لازم برای هم‌راستاسازی لایک‌ها
func (r *PostRepositoryMongo) FindPage(ctx context.Context, afterID string, limit int64) ([]*post.Post, error) {
	filter := bson.M{}
	if afterID != "" {
		filter["_id"] = bson.M{"$gt": afterID}
	}
	findOpt := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 1, "user_id": 1, "likes": 1})

	cur, err := r.Collection.Find(ctx, filter, findOpt)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []*post.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// conditionalUpdate: اگر فیلتر match نشد یعنی یا پست نیست یا تغییر قبلاً انجام شده
func (r *PostRepositoryMongo) conditionalUpdate(ctx context.Context, postID string, filter, update bson.M) (*post.Post, bool, error) {
	p, err := r.findOneAndUpdate(ctx, filter, update)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, false, err
	}
	current, err := r.FindByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *PostRepositoryMongo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*post.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p post.Post
	if err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PostRepositoryMongo) find(ctx context.Context, filter bson.M) ([]*post.Post, error) {
	findOpt := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.Collection.Find(ctx, filter, findOpt)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []*post.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// likeUpdate فیلتر فقط وقتی match می‌شود که کاربر هنوز لایک نکرده باشد
func likeUpdate(postID, userID string) (filter, update bson.M) {
	filter = bson.M{"_id": postID, "likes": bson.M{"$ne": userID}}
	update = bson.M{"$addToSet": bson.M{"likes": userID}}
	return filter, update
}

func unlikeUpdate(postID, userID string) (filter, update bson.M) {
	filter = bson.M{"_id": postID, "likes": userID}
	update = bson.M{"$pull": bson.M{"likes": userID}}
	return filter, update
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}
	return err
}
