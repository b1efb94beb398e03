// internal/responder/catalog.go
package responder

// Category maps a lowercase lookup key to the label shown to users.
type Category struct {
	Key         string
	DisplayName string
}

// Subcategory lists the finer-grained services offered under a category key.
type Subcategory struct {
	CategoryKey string
	Services    []string
}

// Order matters: replies scan these tables front to back and stop at the first hit.
var categories = []Category{
	{Key: "residential cleaning", DisplayName: "Residential Cleaning Services"},
	{Key: "commercial cleaning", DisplayName: "Commercial Cleaning Services"},
	{Key: "industrial cleaning", DisplayName: "Industrial Cleaning Services"},
	{Key: "polishing services", DisplayName: "Polishing Services"},
	{Key: "packers and movers", DisplayName: "Packers and Movers"},
	{Key: "pest control", DisplayName: "Pest Control Services"},
	{Key: "full home deep cleaning", DisplayName: "Full Home Deep Cleaning Services"},
	{Key: "kitchen cleaning", DisplayName: "Kitchen Cleaning Services"},
	{Key: "bathroom cleaning", DisplayName: "Bathroom Cleaning Services"},
	{Key: "sofa cleaning", DisplayName: "Sofa Cleaning Services"},
	{Key: "carpet cleaning", DisplayName: "Carpet Cleaning Services"},
	{Key: "mattress cleaning", DisplayName: "Mattress Cleaning Services"},
	{Key: "window cleaning", DisplayName: "Window Cleaning Services"},
	{Key: "balcony cleaning", DisplayName: "Balcony Cleaning Services"},
	{Key: "hall cleaning", DisplayName: "Hall Cleaning Services"},
	{Key: "bedroom cleaning", DisplayName: "Bedroom Cleaning Services"},
	{Key: "water sump cleaning", DisplayName: "Water Sump Cleaning Services"},
	{Key: "water tank cleaning", DisplayName: "Water Tank Cleaning Services"},
	{Key: "floor cleaning", DisplayName: "Floor Deep Cleaning / Floor Basic Cleaning"},
	{Key: "marble polishing", DisplayName: "Polishing Services"},
}

var subcategories = []Subcategory{
	{CategoryKey: "residential cleaning", Services: []string{
		"full home deep cleaning", "kitchen cleaning", "bathroom cleaning",
		"sofa cleaning", "carpet cleaning", "mattress cleaning",
		"window cleaning", "balcony cleaning", "hall cleaning",
		"bedroom cleaning", "exterior cleaning", "water sump cleaning",
		"water tank cleaning", "floor cleaning",
	}},
	{CategoryKey: "kitchen cleaning", Services: []string{
		"occupied kitchen cleaning", "empty kitchen cleaning",
		"kitchen chimney cleaning", "micro oven cleaning",
		"exhaust fan cleaning", "fridge cleaning",
	}},
	{CategoryKey: "bathroom cleaning", Services: []string{
		"bathroom basic cleaning", "bathroom deep cleaning",
		"luxury bathroom deep cleaning",
	}},
	{CategoryKey: "sofa cleaning", Services: []string{
		"fabric sofa cleaning", "leather sofa cleaning",
		"recliner sofa cleaning", "sectional sofa cleaning",
	}},
	{CategoryKey: "carpet cleaning", Services: []string{
		"carpet small size", "carpet medium size",
		"carpet large size", "carpet deep shampooing",
	}},
	{CategoryKey: "mattress cleaning", Services: []string{
		"single mattress cleaning", "queen mattress cleaning",
		"king mattress cleaning",
	}},
	{CategoryKey: "window cleaning", Services: []string{
		"small window cleaning", "medium window cleaning",
		"large window cleaning", "extra large window cleaning",
	}},
	{CategoryKey: "balcony cleaning", Services: []string{
		"balcony basic cleaning", "balcony deep cleaning",
	}},
	{CategoryKey: "hall cleaning", Services: []string{
		"hall basic cleaning", "hall deep cleaning",
	}},
	{CategoryKey: "bedroom cleaning", Services: []string{
		"bedroom basic cleaning", "bedroom deep cleaning",
	}},
	{CategoryKey: "pest control", Services: []string{
		"cockroach pest control", "bedbug pest control",
		"termite treatment", "woodborer pest control",
		"rodent pest control", "mosquito pest control",
		"general pest control", "commercial pest control",
		"AMC pest control",
	}},
	{CategoryKey: "polishing services", Services: []string{
		"indian marble polishing", "italian marble polishing",
		"mosaic tile polishing", "granite polishing",
	}},
	{CategoryKey: "packers and movers", Services: []string{
		"home shifting services", "office shifting services",
		"local shifting", "packing and loading",
	}},
}

const (
	businessName = "kushi"
	phoneNumber  = "+91 9876543210"
)

// Company facts.
const (
	contactText = "📞 You can reach Kushi Cleaning Services at " + phoneNumber + " (WhatsApp / Call)."
	timingsText = "⏰ We operate 7 days a week from 8 AM – 9 PM."
	aboutText   = "🏠 Kushi Cleaning Services provides professional Residential, Commercial, " +
		"Industrial Cleaning, Polishing, Pest Control, and Packers & Movers services."

	bookingText = "📝 To book a service:\n" +
		"1️⃣ Tell me what service you need.\n" +
		"2️⃣ Share your preferred date, time & location.\n" +
		"3️⃣ Our team will confirm via WhatsApp/Call.\n\n" +
		"📞 You can also contact us directly at " + phoneNumber + "."

	equipmentText = "🧼 Our Kushi team brings all required equipment, tools, machines and " +
		"professional cleaning chemicals.\n" +
		"You don't need to provide anything.\n\n" +
		"If you have any doubts, feel free to contact our team on WhatsApp or Call at " + phoneNumber + ". 😊"
)

// Fixed replies.
const (
	retypeText = "Please type your message again."

	greetingText = "Hello 😊! Welcome to Kushi Cleaning Services.\n" +
		"How can I help you? You can ask:\n" +
		"• What services do you provide?\n" +
		"• Subcategories of kitchen cleaning\n" +
		"• How to book a service?\n" +
		"• Do you bring chemicals?\n"

	categoryNotFoundText = "I couldn't find that service category. Please ask like 'subcategories of kitchen cleaning'."

	fallbackText = "I'm not sure I understood that. Please try again.\n" +
		"You can ask things like:\n" +
		"• What services do you provide?\n" +
		"• Subcategories of kitchen cleaning\n" +
		"• Do you bring chemicals?\n" +
		"• How to book a service?\n"

	bookingNudge    = "If you want to book, just tell me the date & time. 😊"
	subServiceNudge = "If you'd like to book it, tell me your date, time & location. 😊"
)

// Triggers, checked in rule order.
var (
	greetings = []string{
		"hi", "hello", "hey", "good morning",
		"good afternoon", "good evening", "namaste",
	}
	contactTriggers   = []string{"contact", "phone", "call", "whatsapp"}
	timingsTriggers   = []string{"time", "timings", "hours"}
	aboutTriggers     = []string{"about", businessName}
	bookingTriggers   = []string{"book", "booking"}
	equipmentTriggers = []string{
		"equipment", "tools", "materials",
		"chemicals", "do you bring",
		"cleaning products", "machines", "vacuum",
		"do i need to provide", "do we need to provide",
	}
	serviceListTriggers = []string{"what services", "services you provide", "service list"}
	fullListTriggers    = []string{"all services", "list all"}
)

const subcategoriesTrigger = "subcategories of"

// Categories returns a copy of the category table in lookup order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Subcategories returns the sub-services listed under key, or nil.
func Subcategories(key string) []string {
	for _, sc := range subcategories {
		if sc.CategoryKey == key {
			out := make([]string, len(sc.Services))
			copy(out, sc.Services)
			return out
		}
	}
	return nil
}

// Greetings returns the greeting triggers.
func Greetings() []string {
	out := make([]string, len(greetings))
	copy(out, greetings)
	return out
}
