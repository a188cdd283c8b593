package extractor

// Fixed vocabularies the heuristics match against. The source site's markup is
// obfuscated and unstable, so location detection leans on recognising real
// place names in free text rather than trusting any particular element.

var usStates = []string{
	"Texas", "California", "Florida", "New York", "Illinois", "Pennsylvania",
	"Ohio", "Georgia", "North Carolina", "Michigan", "New Jersey", "Virginia",
	"Washington", "Arizona", "Massachusetts", "Tennessee", "Indiana", "Missouri",
	"Maryland", "Wisconsin", "Colorado", "Minnesota", "South Carolina", "Alabama",
	"Louisiana", "Kentucky", "Oregon", "Oklahoma", "Connecticut", "Utah", "Iowa",
	"Nevada", "Arkansas", "Mississippi", "Kansas", "New Mexico", "Nebraska",
	"West Virginia", "Idaho", "Hawaii", "New Hampshire", "Maine", "Montana",
	"Rhode Island", "Delaware", "South Dakota", "North Dakota", "Alaska",
	"Vermont", "Wyoming",
}

var countries = []string{
	"United States", "USA", "Canada", "Mexico", "UK", "United Kingdom",
	"France", "Germany", "Italy", "Spain", "Australia", "Japan", "China",
	"India", "Brazil",
}

// amenityVocabulary is the fixed set of amenities recognised in body text.
// Output preserves this order.
var amenityVocabulary = []string{
	"WiFi", "Kitchen", "Parking", "Pool", "Hot tub", "Air conditioning",
	"Heating", "Washer", "Dryer", "TV", "Cable TV", "Internet",
	"Laptop friendly workspace", "Pets allowed", "Smoking allowed",
}
