package catalog

func opt(s string) *string { return &s }

var catalogs = map[Kind][]Item{
	KindHotel: {
		{ID: 1, Name: "Grand Plaza Hotel", Price: 250, Image: "🏨", Details: Hotel{Location: "New York, USA", Rating: 4.8, Amenities: []string{"WiFi", "Pool", "Spa"}}},
		{ID: 2, Name: "Ocean View Resort", Price: 320, Image: "🏖️", Details: Hotel{Location: "Miami, USA", Rating: 4.9, Amenities: []string{"Beach", "Restaurant", "Bar"}}},
		{ID: 3, Name: "Mountain Lodge", Price: 180, Image: "🏔️", Details: Hotel{Location: "Colorado, USA", Rating: 4.6, Amenities: []string{"Parking", "Heating", "WiFi"}}},
		{ID: 4, Name: "City Center Inn", Price: 200, Image: "🏙️", Details: Hotel{Location: "Los Angeles, USA", Rating: 4.7, Amenities: []string{"Gym", "WiFi", "Breakfast"}}},
	},
	KindCar: {
		{ID: 1, Name: "Toyota Camry", Price: 45, Image: "🚗", Details: Car{Model: opt("Sedan"), Rating: 4.7, Features: []string{"Auto", "AC", "5 Seats"}}},
		{ID: 2, Name: "Honda CR-V", Price: 65, Image: "🚙", Details: Car{Model: opt("SUV"), Rating: 4.8, Features: []string{"Auto", "AC", "7 Seats"}}},
		{ID: 3, Name: "Tesla Model 3", Price: 85, Image: "⚡", Details: Car{Model: opt("Electric"), Rating: 4.9, Features: []string{"Auto", "Electric", "5 Seats"}}},
		{ID: 4, Name: "Ford Mustang", Price: 120, Image: "🏎️", Details: Car{Model: opt("Sports"), Rating: 4.8, Features: []string{"Manual", "AC", "4 Seats"}}},
	},
	KindTour: {
		{ID: 1, Name: "City Walking Tour", Price: 50, Image: "🗼", Details: Tour{Location: "Paris, France", Rating: 4.9, Duration: "4 hours"}},
		{ID: 2, Name: "Desert Safari", Price: 120, Image: "🏜️", Details: Tour{Location: "Dubai, UAE", Rating: 4.8, Duration: "6 hours"}},
		{ID: 3, Name: "Island Hopping", Price: 200, Image: "🏝️", Details: Tour{Location: "Maldives", Rating: 4.9, Duration: "8 hours"}},
		{ID: 4, Name: "Mountain Trek", Price: 150, Image: "⛰️", Details: Tour{Location: "Nepal", Rating: 4.7, Duration: "2 days"}},
	},
	KindVisa: {
		{ID: 1, Name: "Tourist Visa", Price: 160, Image: "🇺🇸", Details: Visa{Country: "USA", Processing: "7-10 days"}},
		{ID: 2, Name: "Business Visa", Price: 140, Image: "🇬🇧", Details: Visa{Country: "UK", Processing: "5-7 days"}},
		{ID: 3, Name: "Student Visa", Price: 150, Image: "🇨🇦", Details: Visa{Country: "Canada", Processing: "10-15 days"}},
		{ID: 4, Name: "Tourist Visa", Price: 145, Image: "🇦🇺", Details: Visa{Country: "Australia", Processing: "7-14 days"}},
	},
}
