package product

import "time"

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// DemoCatalog is the starting catalog for a storefront with nothing
// persisted yet.
func DemoCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Handwoven Silk Saree",
			Description: "Beautiful handwoven silk saree with traditional motifs",
			Price:       8500,
			Image:       "https://cdn.shopify.com/s/files/1/0281/2510/2153/products/saec1610-reda-traditional-paithani-woven-saree-in-art-silk-with-broad-border-and-bird-motifs-pallu.jpg",
			Category:    "Textiles",
			SellerID:    "1",
			SellerName:  "Meera Textiles",
			Status:      StatusApproved,
			Stock:       5,
			Tags:        []string{"saree", "silk", "traditional", "handwoven"},
			CreatedAt:   day("2024-01-15"),
			Rating:      4.8,
			ReviewCount: 24,
		},
		{
			ID:          "2",
			Name:        "Brass Handicraft Vase",
			Description: "Intricately designed brass vase with floral patterns",
			Price:       2200,
			Image:       "https://m.media-amazon.com/images/I/81PYL2QAZEL._SL1500_.jpg",
			Category:    "Home Decor",
			SellerID:    "2",
			SellerName:  "Kumar Crafts",
			Status:      StatusApproved,
			Stock:       8,
			Tags:        []string{"brass", "vase", "handicraft", "home-decor"},
			CreatedAt:   day("2024-01-12"),
			Rating:      4.6,
			ReviewCount: 18,
		},
		{
			ID:          "3",
			Name:        "Wooden Jewelry Box",
			Description: "Handcrafted wooden jewelry box with mirror",
			Price:       1800,
			Image:       "https://tse1.mm.bing.net/th/id/OIP.kKvVbp5Z3s5e17LHa47O0AHaFj",
			Category:    "Furniture",
			SellerID:    "3",
			SellerName:  "Woodcraft Studio",
			Status:      StatusApproved,
			Stock:       12,
			Tags:        []string{"wooden", "jewelry-box", "handcrafted", "storage"},
			CreatedAt:   day("2024-01-10"),
			Rating:      4.9,
			ReviewCount: 31,
		},
		{
			ID:          "4",
			Name:        "Ceramic Tea Set",
			Description: "Hand-painted ceramic tea set with traditional designs",
			Price:       3200,
			Image:       "https://i5.walmartimages.com/asr/f5b8b9a8-db74-46b3-8bab-d4d3750b991c_1.a324566a148730e0a24b1b82fc06a1f3.jpeg",
			Category:    "Ceramics",
			SellerID:    "4",
			SellerName:  "Pottery Paradise",
			Status:      StatusApproved,
			Stock:       6,
			Tags:        []string{"ceramic", "tea-set", "hand-painted", "traditional"},
			CreatedAt:   day("2024-01-08"),
			Rating:      4.7,
			ReviewCount: 22,
		},
		{
			ID:          "5",
			Name:        "Embroidered Cushion Covers",
			Description: "Set of 4 embroidered cushion covers with mirror work",
			Price:       1200,
			Image:       "https://images.woodenstreet.de/image/data/eyda/embroidered-cotton-cushion-covers-set-of-2-blue18-x-18-inch/30-5/1.jpg",
			Category:    "Textiles",
			SellerID:    "5",
			SellerName:  "Thread Art",
			Status:      StatusApproved,
			Stock:       15,
			Tags:        []string{"embroidered", "cushion-covers", "mirror-work", "home-decor"},
			CreatedAt:   day("2024-01-05"),
			Rating:      4.5,
			ReviewCount: 16,
		},
		{
			ID:          "6",
			Name:        "Silver Filigree Earrings",
			Description: "Delicate silver filigree earrings with traditional patterns",
			Price:       2800,
			Image:       "https://th.bing.com/th/id/OIP.sb8mbmc_BHHNh8tZSIzzOgHaIC",
			Category:    "Jewelry",
			SellerID:    "6",
			SellerName:  "Silver Creations",
			Status:      StatusApproved,
			Stock:       20,
			Tags:        []string{"silver", "filigree", "earrings", "jewelry"},
			CreatedAt:   day("2024-01-03"),
			Rating:      4.8,
			ReviewCount: 27,
		},
	}
}
