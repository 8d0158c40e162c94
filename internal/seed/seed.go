package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo writers, posts, comments and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}
		posts = append(posts, post)
	}

	// A couple of comments per post on average, and some likes.
	for _, post := range posts {
		for i := 0; i < f.rand.Intn(4); i++ {
			commenter := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
		for _, user := range pickDistinct(f, users, f.rand.Intn(5)) {
			if user.ID == post.UserID {
				continue
			}
			if err := f.CreateLike(user, post); err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

// pickDistinct returns up to n distinct users.
func pickDistinct(f *Factory, users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := f.rand.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}

// clearData removes all rows, children first.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Like{},
		&models.Comment{},
		&models.DailyActivity{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
