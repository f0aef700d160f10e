package seed

import (
	"fmt"
	"log"
	"time"

	"gamenexus/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var games = []string{
	"Elden Ring", "Valorant", "Rocket League", "Stardew Valley", "Apex Legends",
	"Baldur's Gate 3", "Hades II", "Counter-Strike 2", "Helldivers 2", "Factorio",
}

var tagNames = []string{
	"ranked", "casual", "lfg", "speedrun", "clips", "patch-notes", "co-op", "indie",
}

var postTemplates = []string{
	"Finally cleared %s after way too many attempts. AMA.",
	"Anyone up for some %s tonight? Need two more for the squad.",
	"Hot take: the latest %s patch actually fixed matchmaking.",
	"Best session of %s I've had all year, clips incoming.",
	"Looking for tips on the late game in %s, what am I missing?",
}

var commentTemplates = []string{
	"Count me in.",
	"GG, that run was clean.",
	"Add me, same rank.",
	"Totally disagree about the patch but respect the grind.",
	"Post the clip already!",
}

// Options controls how much data Seed generates.
type Options struct {
	Users   int
	Wipe    bool
	RandSrc int64
}

// DefaultOptions seeds a small, deterministic data set.
func DefaultOptions() Options {
	return Options{Users: 15, Wipe: true, RandSrc: 1}
}

// Seed populates the database with demo users, friendships, posts, stories
// and interactions. Not for production use.
func Seed(db *gorm.DB, opts Options) error {
	log.Println("Starting database seeding...")
	faker := gofakeit.New(opts.RandSrc)

	if opts.Wipe {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	users, err := createUsers(db, faker, opts.Users)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	tags, err := createTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}

	posts, err := createPosts(db, faker, users, tags)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	friendships, err := createFriendships(db, faker, users)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("Created %d friendships", friendships)

	likes, err := addLikes(db, faker, users, posts)
	if err != nil {
		return fmt.Errorf("failed to add likes: %w", err)
	}
	log.Printf("Added %d likes", likes)

	comments, err := createComments(db, faker, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("Created %d comments", comments)

	stories, err := createStories(db, faker, users)
	if err != nil {
		return fmt.Errorf("failed to create stories: %w", err)
	}
	log.Printf("Created %d stories", stories)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")

	// Delete in dependency order so foreign keys stay satisfied.
	tables := []string{
		"comments", "likes", "post_tags", "post_images", "posts",
		"stories", "friendships", "tags", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, faker *gofakeit.Faker, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s_%d", faker.Gamertag(), i)
		avatar := fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", username)
		bio := fmt.Sprintf("Mostly playing %s these days.", faker.RandomString(games))

		user := models.User{
			Username:     username,
			Email:        fmt.Sprintf("%s@example.com", username),
			PasswordHash: string(hashed),
			Nickname:     faker.Username(),
			AvatarURL:    &avatar,
			Bio:          &bio,
			Role:         models.RoleMember,
			Status:       models.UserStatusActive,
		}
		if i == 0 {
			user.Role = models.RoleAdmin
		}

		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createTags(db *gorm.DB) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := models.Tag{Name: name}
		if err := db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createPosts(db *gorm.DB, faker *gofakeit.Faker, users []models.User, tags []models.Tag) ([]models.Post, error) {
	posts := make([]models.Post, 0)

	for _, user := range users {
		numPosts := faker.Number(1, 4)
		for i := 0; i < numPosts; i++ {
			content := fmt.Sprintf(faker.RandomString(postTemplates), faker.RandomString(games))
			post := models.Post{
				UserID:  user.ID,
				Content: &content,
				Status:  models.PostStatusApproved,
			}
			if err := db.Create(&post).Error; err != nil {
				return nil, err
			}

			// 30% of posts carry a screenshot.
			if faker.Float32Range(0, 1) < 0.3 {
				image := models.PostImage{
					PostID:   post.ID,
					ImageURL: fmt.Sprintf("https://picsum.photos/seed/%d/800/600", faker.Number(1, 1000)),
				}
				if err := db.Create(&image).Error; err != nil {
					return nil, err
				}
			}

			picked := tags[faker.Number(0, len(tags)-1)]
			if err := db.Model(&post).Association("Tags").Append(&picked); err != nil {
				return nil, err
			}

			posts = append(posts, post)
		}
	}
	return posts, nil
}

// createFriendships links random pairs, most accepted and some left pending.
// Rows are stored sender-first like the live request path writes them.
func createFriendships(db *gorm.DB, faker *gofakeit.Faker, users []models.User) (int, error) {
	count := 0
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if faker.Float32Range(0, 1) > 0.25 {
				continue
			}

			sender, receiver := users[i], users[j]
			friendship := models.Friendship{
				UserOneID:    sender.ID,
				UserTwoID:    receiver.ID,
				Status:       models.FriendshipStatusPending,
				ActionUserID: sender.ID,
			}
			if faker.Float32Range(0, 1) < 0.7 {
				friendship.Status = models.FriendshipStatusAccepted
				friendship.ActionUserID = receiver.ID
			}

			if err := db.Create(&friendship).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func addLikes(db *gorm.DB, faker *gofakeit.Faker, users []models.User, posts []models.Post) (int, error) {
	count := 0
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID || faker.Float32Range(0, 1) > 0.2 {
				continue
			}

			like := models.Like{UserID: user.ID, PostID: post.ID}
			if err := db.Where(models.Like{UserID: user.ID, PostID: post.ID}).FirstOrCreate(&like).Error; err != nil {
				log.Printf("Could not create like for user %d on post %d: %v", user.ID, post.ID, err)
				continue
			}

			// Mirror the live path: each like credits the author a point.
			if err := db.Model(&models.User{}).
				Where("id = ?", post.UserID).
				Update("points", gorm.Expr("points + 1")).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func createComments(db *gorm.DB, faker *gofakeit.Faker, users []models.User, posts []models.Post) (int, error) {
	count := 0
	for _, post := range posts {
		numComments := faker.Number(0, 3)
		for i := 0; i < numComments; i++ {
			commenter := users[faker.Number(0, len(users)-1)]
			content := faker.RandomString(commentTemplates)

			comment := models.Comment{
				PostID:  post.ID,
				UserID:  commenter.ID,
				Content: &content,
			}
			if err := db.Create(&comment).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// createStories backdates creation times inside the visibility window so a
// freshly seeded feed shows a mix of newer and older stories.
func createStories(db *gorm.DB, faker *gofakeit.Faker, users []models.User) (int, error) {
	count := 0
	for _, user := range users {
		if faker.Float32Range(0, 1) > 0.4 {
			continue
		}

		game := faker.RandomString(games)
		content := fmt.Sprintf("Live now in %s!", game)
		story := models.Story{
			UserID:    user.ID,
			Content:   &content,
			Game:      &game,
			CreatedAt: time.Now().Add(-time.Duration(faker.Number(0, 20)) * time.Hour),
		}
		if err := db.Create(&story).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
