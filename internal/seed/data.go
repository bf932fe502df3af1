package seed

import "github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"

const sampleFilename = "listingimage"

var samples = []domain.Listing{
	{
		Title:       "Cozy Beachfront Cottage",
		Description: "Escape to this charming beachfront cottage for a relaxing getaway. Enjoy stunning ocean views and easy access to the beach.",
		Image:       domain.Image{Filename: sampleFilename, URL: "https://images.unsplash.com/photo-1552733407-5d5c46c3bb3b?auto=format&fit=crop&w=800&q=60"},
		Price:       1500,
		Location:    "Malibu, United States",
	},
	{
		Title:       "Modern Loft in Downtown",
		Description: "Stay in the heart of the city in this stylish loft apartment. Perfect for urban explorers!",
		Image:       domain.Image{Filename: sampleFilename, URL: "https://images.unsplash.com/photo-1501785888041-af3ef285b470?auto=format&fit=crop&w=800&q=60"},
		Price:       1200,
		Location:    "New York City, United States",
	},
	{
		Title:       "Mountain Retreat",
		Description: "Unplug and unwind in this peaceful mountain cabin. Surrounded by nature, it's a perfect place to recharge.",
		Image:       domain.Image{Filename: sampleFilename, URL: "https://images.unsplash.com/photo-1571896349842-33c89424de2d?auto=format&fit=crop&w=800&q=60"},
		Price:       1000,
		Location:    "Aspen, United States",
	},
	{
		Title:       "Historic Villa in Tuscany",
		Description: "Experience the charm of Tuscany in this beautifully restored villa. Explore the rolling hills and vineyards.",
		Image:       domain.Image{Filename: sampleFilename, URL: "https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&w=800&q=60"},
		Price:       2500,
		Location:    "Florence, Italy",
	},
	{
		Title:       "Secluded Treehouse Getaway",
		Description: "Live among the treetops in this unique treehouse retreat. A true nature lover's paradise.",
		Image:       domain.Image{Filename: sampleFilename, URL: "https://images.unsplash.com/photo-1488462237308-ecaa28b729d7?auto=format&fit=crop&w=800&q=60"},
		Price:       800,
		Location:    "Portland, United States",
	},
	{
		Title:       "Beachfront Paradise",
		Description: "Step out of your door onto the sandy beach. This beachfront condo offers the ultimate relaxation.",
		Image:       domain.Image{Filename: sampleFilename, URL: "https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?auto=format&fit=crop&w=800&q=60"},
		Price:       2000,
		Location:    "Cancun, Mexico",
	},
}
