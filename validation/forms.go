package validation

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (f *LoginForm) Normalize() {
	f.Email = Email(f.Email)
}

type SignupForm struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (f *SignupForm) Normalize() {
	f.Name = Name(f.Name)
	f.Email = Email(f.Email)
}

type FeedbackForm struct {
	FullName     string   `json:"fullName" validate:"required,min=2"`
	Address      string   `json:"address"`
	PhoneNumber  string   `json:"phoneNumber"`
	MenuItems    []string `json:"menuItems" validate:"omitempty,dive,required,excludes=0x2C"`
	FeedbackText string   `json:"feedbackText" validate:"required,min=10"`
}

func (f *FeedbackForm) Normalize() {
	f.FullName = Name(f.FullName)
	f.Address = Text(f.Address)
	f.PhoneNumber = Text(f.PhoneNumber)
	f.MenuItems = textList(f.MenuItems)
	f.FeedbackText = Text(f.FeedbackText)
}

type MenuItemForm struct {
	Name        string   `json:"name" validate:"required,min=2,excludes=0x2C"` // feedback stores names comma-joined
	Description string   `json:"description" validate:"required,min=5"`
	Price       float64  `json:"price" validate:"gt=0"`
	Category    string   `json:"category" validate:"required,min=2"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}

func (f *MenuItemForm) Normalize() {
	f.Name = Name(f.Name)
	f.Description = Text(f.Description)
	f.Category = Text(f.Category)
	f.Ingredients = textList(f.Ingredients)
	f.ImageURL = Text(f.ImageURL)
}

type OrderItemForm struct {
	MenuItemID string   `json:"menuItemId" validate:"required"`
	Quantity   int      `json:"quantity" validate:"min=1"`
	Modifiers  []string `json:"modifiers" validate:"omitempty,dive,required"`
}

type OrderForm struct {
	CustomerName    string          `json:"customerName" validate:"required,min=2"`
	Type            string          `json:"type" validate:"required,oneof=dine-in takeaway delivery"`
	Status          string          `json:"status" validate:"omitempty,oneof=pending preparing completed cancelled"`
	TableNumber     string          `json:"tableNumber"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Items           []OrderItemForm `json:"items" validate:"required,min=1,dive"`
}

func (f *OrderForm) Normalize() {
	f.CustomerName = Name(f.CustomerName)
	f.Type = Text(f.Type)
	f.Status = Text(f.Status)
	f.TableNumber = Text(f.TableNumber)
	f.DeliveryAddress = Text(f.DeliveryAddress)
	for i := range f.Items {
		f.Items[i].MenuItemID = Text(f.Items[i].MenuItemID)
		f.Items[i].Modifiers = textList(f.Items[i].Modifiers)
	}
}

type StatusForm struct {
	Status string `json:"status" validate:"required,oneof=pending preparing completed cancelled"`
}

func (f *StatusForm) Normalize() {
	f.Status = Text(f.Status)
}
