package migrations

import (
	"log"
	"time"

	"burgero/internal/models"
	"burgero/internal/repository"
	"burgero/internal/services"

	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds the default data the public
// site expects: an admin account, the six house burgers and the three
// specials.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.AdminUser{},
		&models.Order{},
		&models.Message{},
		&models.MenuItem{},
		&models.SpecialItem{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	adminRepo := repository.NewAdminUserRepository(db)
	authService := services.NewAuthService(adminRepo, "", 24*time.Hour)

	if _, err := adminRepo.GetByUsername("admin"); err != nil {
		log.Println("Creating admin user...")
		if err := authService.CreateAdmin("admin", "admin123"); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		}
	}

	menuRepo := repository.NewMenuItemRepository(db)
	if items, err := menuRepo.GetAll(); err == nil && len(items) == 0 {
		log.Println("Seeding default menu items...")
		for _, item := range defaultMenuItems() {
			seeded := item
			if err := menuRepo.Create(&seeded); err != nil {
				log.Printf("Warning: Failed to seed menu item %q: %v", item.Name, err)
			}
		}
	}

	specialRepo := repository.NewSpecialItemRepository(db)
	if items, err := specialRepo.GetAll(); err == nil && len(items) == 0 {
		log.Println("Seeding default special items...")
		for _, item := range defaultSpecialItems() {
			seeded := item
			if err := specialRepo.Create(&seeded); err != nil {
				log.Printf("Warning: Failed to seed special item %q: %v", item.Title, err)
			}
		}
	}

	return nil
}

func defaultMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Classic Burger", Price: 8.00, Description: "A timeless favorite with lettuce, tomato, and cheese.", ImageURL: "/images/ClassicBurger.jpg", IsDefault: true},
		{Name: "The Lebanese", Price: 9.00, Description: "Featuring a blend of spices and fresh veggies.", ImageURL: "/images/TheLebanese.jpg", IsDefault: true},
		{Name: "Mushroom Vibes", Price: 10.00, Description: "Sauteed mushrooms with Swiss cheese and garlic aioli.", ImageURL: "/images/MushroomVibes.jpg", IsDefault: true},
		{Name: "The Burgero", Price: 7.00, Description: "Our signature burger with special sauce and pickles.", ImageURL: "/images/TheBurgero.jpg", IsDefault: true},
		{Name: "The Mozz", Price: 10.00, Description: "Mozzarella-stuffed patty with marinara sauce.", ImageURL: "/images/TheMozz.jpg", IsDefault: true},
		{Name: "The Smash Burger", Price: 11.00, Description: "Double patty smashed to perfection with crispy edges.", ImageURL: "/images/TheSmashBurger.jpg", IsDefault: true},
	}
}

func defaultSpecialItems() []models.SpecialItem {
	return []models.SpecialItem{
		{Title: "Pepper Maize", Price: 10.00, Stars: 4.5, ImageURL: "/images/PepperMaize.jpg", IsDefault: true},
		{Title: "Truffle Burger", Price: 9.00, Stars: 4.5, ImageURL: "/images/TruffleBurger.jpg", IsDefault: true},
		{Title: "Burgerita", Price: 11.00, Stars: 4.5, ImageURL: "/images/Burgerita.jpg", IsDefault: true},
	}
}
