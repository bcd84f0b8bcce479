package repository

import (
	"context"
	"fmt"
	"time"

	"dinedash/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SampleMenu is the menu a fresh installation starts with.
func SampleMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "MI001", Name: "Galawat Kebab", Description: "Melt-in-the-mouth minced mutton kebabs, a Lucknowi specialty.", Price: 350, Category: "Appetizers",
			Ingredients: datatypes.JSONSlice[string]{"Minced Mutton", "Spices", "Herbs", "Ghee"}},
		{ID: "MI002", Name: "Rumali Roti", Description: "Thin, soft, and handkerchief-like bread, perfect with kebabs and curries.", Price: 30, Category: "Breads",
			Ingredients: datatypes.JSONSlice[string]{"Flour", "Water", "Milk"}},
		{ID: "MI003", Name: "Butter Chicken", Description: "Creamy and mildly spiced chicken curry, a global favorite.", Price: 450, Category: "Main Course",
			Ingredients: datatypes.JSONSlice[string]{"Chicken", "Tomato Puree", "Cream", "Butter", "Spices"}},
		{ID: "MI004", Name: "Tandoori Roti", Description: "Whole wheat bread baked in a tandoor.", Price: 25, Category: "Breads",
			Ingredients: datatypes.JSONSlice[string]{"Whole Wheat Flour", "Water", "Yogurt"}},
		{ID: "MI005", Name: "Aloo Gobhi", Description: "A classic North Indian dish made with potatoes and cauliflower.", Price: 220, Category: "Vegetarian Main",
			Ingredients: datatypes.JSONSlice[string]{"Potatoes", "Cauliflower", "Onions", "Tomatoes", "Spices"}},
		{ID: "MI006", Name: "Bhindi Masala", Description: "Stir-fried okra cooked with onions, tomatoes, and spices.", Price: 200, Category: "Vegetarian Main",
			Ingredients: datatypes.JSONSlice[string]{"Okra (Bhindi)", "Onions", "Tomatoes", "Spices"}},
		{ID: "MI007", Name: "Rajma Chawal", Description: "Kidney beans curry served with steamed rice. A wholesome meal.", Price: 250, Category: "Vegetarian Main",
			Ingredients: datatypes.JSONSlice[string]{"Kidney Beans (Rajma)", "Rice", "Onions", "Tomatoes", "Spices"}},
		{ID: "MI008", Name: "Coke", Description: "A refreshing can of Coca-Cola.", Price: 40, Category: "Beverages",
			Ingredients: datatypes.JSONSlice[string]{"Carbonated Water", "Sugar", "Flavoring"}},
		{ID: "MI009", Name: "Masala Chai", Description: "Traditional Indian spiced tea.", Price: 50, Category: "Beverages",
			Ingredients: datatypes.JSONSlice[string]{"Tea Leaves", "Milk", "Sugar", "Spices"}},
	}
}

// SampleOrders returns the starter orders, timestamped relative to now.
func SampleOrders(now time.Time) []models.Order {
	orders := []models.Order{
		{
			ID: "ORD001", Type: models.OrderDineIn, Status: models.StatusCompleted,
			CustomerName: "Priya Sharma", TableNumber: "7",
			CreatedAt: now.Add(-2 * time.Hour),
			Items: []models.OrderItem{
				{MenuItemID: "MI001", Name: "Galawat Kebab", Quantity: 1, Price: 350, Modifiers: datatypes.JSONSlice[string]{"extra spicy"}},
				{MenuItemID: "MI002", Name: "Rumali Roti", Quantity: 2, Price: 30},
			},
		},
		{
			ID: "ORD002", Type: models.OrderTakeaway, Status: models.StatusPreparing,
			CustomerName: "Rohan Mehra",
			CreatedAt:    now.Add(-30 * time.Minute),
			Items: []models.OrderItem{
				{MenuItemID: "MI003", Name: "Butter Chicken", Quantity: 1, Price: 450},
				{MenuItemID: "MI004", Name: "Tandoori Roti", Quantity: 4, Price: 25},
			},
		},
		{
			ID: "ORD003", Type: models.OrderDelivery, Status: models.StatusPending,
			CustomerName: "Anjali Singh", DeliveryAddress: "15B, Hazratganj, Lucknow, Uttar Pradesh",
			CreatedAt: now.Add(-5 * time.Minute),
			Items: []models.OrderItem{
				{MenuItemID: "MI007", Name: "Rajma Chawal", Quantity: 2, Price: 250},
			},
		},
	}
	for i := range orders {
		orders[i].Total = models.ComputeTotal(orders[i].Items)
	}
	return orders
}

// SeedSampleData fills the menu and orders tables when they are empty.
func SeedSampleData(ctx context.Context, db *gorm.DB) error {
	menu := NewMenuRepository(db)
	orders := NewOrderRepository(db)

	var count int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count menu items: %w", err)
	}
	if count == 0 {
		created := time.Now().UTC()
		for _, item := range SampleMenu() {
			item.CreatedAt = created
			if _, err := menu.Add(ctx, &item); err != nil {
				return fmt.Errorf("seed menu item %s: %w", item.ID, err)
			}
		}
	}

	if err := db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if count == 0 {
		for _, o := range SampleOrders(time.Now().UTC()) {
			if _, err := orders.Add(ctx, &o); err != nil {
				return fmt.Errorf("seed order %s: %w", o.ID, err)
			}
		}
	}
	return nil
}
