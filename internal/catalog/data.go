package catalog

import "github.com/shopspring/decimal"

// DefaultBooks returns the reference catalog served by the storefront.
func DefaultBooks() []Book {
	return []Book{
		{
			ID:          1,
			Title:       "The Dragon's Heir",
			Author:      "Elena Blackwood",
			Price:       decimal.RequireFromString("45.90"),
			Genre:       "Epic Fantasy",
			Description: "A young blacksmith discovers she's the last descendant of dragon riders. When ancient dragons awaken from their thousand-year slumber, she must choose between her simple life and her destiny to unite the fractured kingdoms.",
			Image:       "assets/images/books/dragon-heir.jpg",
			Stock:       50,
			Pages:       432,
			ISBN:        "978-1-234567-01-2",
			Published:   "2024-03-15",
			Rating:      4.7,
			Reviews:     234,
		},
		{
			ID:          2,
			Title:       "Shadow of the Throne",
			Author:      "Marcus Chen",
			Price:       decimal.RequireFromString("52.00"),
			Genre:       "Dark Fantasy",
			Description: "In a kingdom where shadows hold ancient power, a disgraced noble must navigate deadly political intrigue. As darkness spreads from the throne, he discovers that the true enemy has been hiding in plain sight for generations.",
			Image:       "assets/images/books/shadow-throne.jpg",
			Stock:       35,
			Pages:       528,
			ISBN:        "978-1-234567-02-9",
			Published:   "2024-01-22",
			Rating:      4.5,
			Reviews:     189,
		},
		{
			ID:          3,
			Title:       "The Crystal Mage",
			Author:      "Sarah Winters",
			Price:       decimal.RequireFromString("38.50"),
			Genre:       "High Fantasy",
			Description: "An apprentice mage accidentally shatters a forbidden crystal, releasing magic that was locked away for centuries. Now she must master powers no one has wielded in a thousand years before they consume her realm entirely.",
			Image:       "assets/images/books/crystal-mage.jpg",
			Stock:       42,
			Pages:       368,
			ISBN:        "978-1-234567-03-6",
			Published:   "2024-05-08",
			Rating:      4.8,
			Reviews:     312,
		},
		{
			ID:          4,
			Title:       "Realm of the Forgotten",
			Author:      "James Darkhollow",
			Price:       decimal.RequireFromString("49.90"),
			Genre:       "Adventure Fantasy",
			Description: "A band of explorers stumbles upon a realm that has been erased from all history books. Within its borders, they find civilizations thought to be myth and secrets that powerful forces will kill to keep hidden.",
			Image:       "assets/images/books/realm-forgotten.jpg",
			Stock:       28,
			Pages:       456,
			ISBN:        "978-1-234567-04-3",
			Published:   "2023-11-30",
			Rating:      4.4,
			Reviews:     156,
		},
		{
			ID:          5,
			Title:       "The Last Enchanter",
			Author:      "Lily Thornwood",
			Price:       decimal.RequireFromString("41.00"),
			Genre:       "Romantic Fantasy",
			Description: "The final enchanter alive carries the burden of all magic's secrets. When she falls for a warrior sworn to destroy magic, she must choose between a love that could doom her people and a duty that will leave her alone forever.",
			Image:       "assets/images/books/last-enchanter.jpg",
			Stock:       55,
			Pages:       392,
			ISBN:        "978-1-234567-05-0",
			Published:   "2024-02-14",
			Rating:      4.6,
			Reviews:     278,
		},
		{
			ID:          6,
			Title:       "Blood of the Phoenix",
			Author:      "Victor Ashborne",
			Price:       decimal.RequireFromString("55.90"),
			Genre:       "Mythic Fantasy",
			Description: "A warrior cursed with phoenix blood cannot die, no matter how desperately he wishes for rest. Across centuries of warfare and loss, he searches for the one being who can finally end his immortal suffering.",
			Image:       "assets/images/books/blood-phoenix.jpg",
			Stock:       31,
			Pages:       512,
			ISBN:        "978-1-234567-06-7",
			Published:   "2023-09-20",
			Rating:      4.9,
			Reviews:     445,
		},
		{
			ID:          7,
			Title:       "Whispers of the Void",
			Author:      "Diana Nightshade",
			Price:       decimal.RequireFromString("47.50"),
			Genre:       "Cosmic Fantasy",
			Description: "Ancient entities from the void between stars begin whispering to a deaf princess. As she learns to interpret their alien language, she realizes they're warning her of a doom that approaches from beyond the sky.",
			Image:       "assets/images/books/whispers-void.jpg",
			Stock:       23,
			Pages:       488,
			ISBN:        "978-1-234567-07-4",
			Published:   "2024-04-01",
			Rating:      4.3,
			Reviews:     167,
		},
		{
			ID:          8,
			Title:       "The Iron Kingdom",
			Author:      "Robert Steele",
			Price:       decimal.RequireFromString("43.00"),
			Genre:       "Steampunk Fantasy",
			Description: "In a realm where magic and machines wage endless war, a young inventor discovers a way to merge both. But his creation attracts the attention of forces who would use it to tip the balance of power forever.",
			Image:       "assets/images/books/iron-kingdom.jpg",
			Stock:       38,
			Pages:       416,
			ISBN:        "978-1-234567-08-1",
			Published:   "2023-12-15",
			Rating:      4.5,
			Reviews:     203,
		},
		{
			ID:          9,
			Title:       "Song of the Siren",
			Author:      "Marina Pearl",
			Price:       decimal.RequireFromString("39.90"),
			Genre:       "Oceanic Fantasy",
			Description: "A sailor falls in love with a siren who holds the sea's darkest secret. Together they must dive into the depths where ancient leviathans slumber, seeking the truth about a curse that binds both their peoples.",
			Image:       "assets/images/books/song-siren.jpg",
			Stock:       47,
			Pages:       344,
			ISBN:        "978-1-234567-09-8",
			Published:   "2024-06-21",
			Rating:      4.7,
			Reviews:     198,
		},
		{
			ID:          10,
			Title:       "The Wanderer's Path",
			Author:      "Thomas Journeyman",
			Price:       decimal.RequireFromString("36.50"),
			Genre:       "Quest Fantasy",
			Description: "A humble mapmaker discovers his maps predict the future. As kingdoms vie to control his gift, he must walk a path between prophecy and free will, learning that some destinations are worth more than any treasure.",
			Image:       "assets/images/books/wanderer-path.jpg",
			Stock:       60,
			Pages:       380,
			ISBN:        "978-1-234567-10-4",
			Published:   "2024-07-10",
			Rating:      4.6,
			Reviews:     145,
		},
	}
}
