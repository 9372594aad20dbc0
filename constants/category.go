package constants

// Category is the fixed expense taxonomy for classified bills.
// The list is versioned: changing it is a compatibility-breaking change for
// downstream consumers of Bill_Category.
type Category string

const (
	TeamLunch          Category = "Team Lunch"
	TravelCab          Category = "Travel - Cab"
	Breakfast          Category = "Breakfast"
	Dinner             Category = "Dinner"
	EveningSnacks      Category = "Evening Snacks"
	TravelAuto         Category = "Travel - Auto"
	TravelBus          Category = "Travel - Bus"
	RepairsMaintenance Category = "Repairs & Maintenance"
	Communication      Category = "Communication"
	General            Category = "General"
	PrintingStationery Category = "Printing & Stationery"
	StaffWelfare       Category = "Staff Welfare"
	Fuel               Category = "Fuel"
	Lunch              Category = "Lunch"
	SoftwareLicense    Category = "Software License"
	Online             Category = "Online"
)

var allCategories = []Category{
	TeamLunch,
	TravelCab,
	Breakfast,
	Dinner,
	EveningSnacks,
	TravelAuto,
	TravelBus,
	RepairsMaintenance,
	Communication,
	General,
	PrintingStationery,
	StaffWelfare,
	Fuel,
	Lunch,
	SoftwareLicense,
	Online,
}

// AllCategories returns the taxonomy in its canonical order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// IsValidCategory reports whether s is a member of the taxonomy.
func IsValidCategory(s string) bool {
	for _, cat := range allCategories {
		if string(cat) == s {
			return true
		}
	}
	return false
}
