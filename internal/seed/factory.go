// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/points"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, rand: rand.New(rand.NewSource(seed))}
}

var quotes = []string{
	"We live as we dream, alone.",
	"The only way out is through.",
	"Everything I know I learned from books.",
	"Prose is architecture, not interior decoration.",
	"A word after a word after a word is power.",
}

// CreateUser constructs and persists a sample account. All seeded accounts
// share the password "SeedAccount12!" so they can be logged into locally.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SeedAccount12!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:          gofakeit.Name(),
		Email:         fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
		Password:      string(hashed),
		Bio:           gofakeit.Sentence(10),
		FavoriteQuote: quotes[f.rand.Intn(len(quotes))],
		Points:        f.rand.Intn(100),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a post in a random category with
// category-appropriate filler content.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	category := models.Categories[f.rand.Intn(len(models.Categories))]

	var content string
	switch category {
	case models.CategoryPoetry:
		lines := make([]string, 4+f.rand.Intn(8))
		for i := range lines {
			lines[i] = gofakeit.Sentence(3 + f.rand.Intn(5))
		}
		content = strings.Join(lines, "\n")
	case models.CategoryJournal:
		content = gofakeit.Paragraph(1, 3, 8, "\n")
	default:
		content = gofakeit.Paragraph(2, 5, 12, "\n\n")
	}

	post := &models.Post{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Sentence(8),
		Content:     content,
		Category:    category,
		Length:      len([]rune(content)),
		UserID:      user.ID,
		CreatedAt:   f.pastTime(90),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists an already-evaluated comment.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	content := gofakeit.Sentence(8 + f.rand.Intn(30))
	score := 10 + f.rand.Intn(90)

	comment := &models.Comment{
		Content:   content,
		Length:    len([]rune(content)),
		Score:     &score,
		Rationale: "seeded verdict",
		UserID:    user.ID,
		PostID:    post.ID,
		CreatedAt: f.pastTime(30),
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a post like and applies its point deltas so seeded
// balances stay consistent with the economy.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: &user.ID, PostID: &post.ID}
	if err := f.db.Create(like).Error; err != nil {
		return err
	}

	likerDelta, authorDelta := points.LikeDeltas(points.TargetPost, false, false)
	if err := f.addPoints(post.UserID, authorDelta); err != nil {
		return err
	}
	return f.addPoints(user.ID, likerDelta)
}

func (f *Factory) addPoints(userID uint, delta int) error {
	return f.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", delta)).Error
}

// pastTime returns a random instant within the last maxDays days.
func (f *Factory) pastTime(maxDays int) time.Time {
	back := time.Duration(f.rand.Intn(maxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}
