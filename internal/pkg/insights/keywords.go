package insights

// A named bucket of keywords. Tables are ordered slices rather than maps so
// that tie-breaks between equal scores stay deterministic: the first bucket
// in table order wins.
type keywordGroup struct {
	name     string
	keywords []string
}

var industryTable = []keywordGroup{
	{"technology", []string{"software", "saas", "platform", "api", "cloud", "digital", "tech", "app", "application"}},
	{"healthcare", []string{"health", "medical", "hospital", "clinic", "patient", "doctor", "treatment", "wellness"}},
	{"finance", []string{"financial", "banking", "investment", "payment", "fintech", "money", "credit", "loan"}},
	{"education", []string{"education", "learning", "course", "training", "school", "university", "student"}},
	{"ecommerce", []string{"shop", "store", "buy", "cart", "product", "retail", "marketplace", "sell"}},
	{"consulting", []string{"consulting", "advisory", "strategy", "consultant", "expert", "services"}},
	{"real_estate", []string{"property", "real estate", "housing", "rent", "buy", "home", "apartment"}},
	{"marketing", []string{"marketing", "advertising", "brand", "campaign", "promotion", "social media"}},
	{"manufacturing", []string{"manufacturing", "production", "factory", "industrial", "machinery"}},
	{"logistics", []string{"logistics", "shipping", "delivery", "supply chain", "transport", "warehouse"}},
}

var audienceTable = []keywordGroup{
	{"enterprise", []string{"enterprise", "large business", "corporation", "fortune"}},
	{"sme", []string{"small business", "sme", "small and medium", "startup"}},
	{"b2b", []string{"b2b", "business to business", "for businesses"}},
	{"b2c", []string{"b2c", "business to consumer", "for consumers", "individual"}},
	{"non_profit", []string{"non-profit", "nonprofit", "ngo", "charity"}},
	{"government", []string{"government", "public sector", "municipal", "federal"}},
}

var toneTable = []keywordGroup{
	{"professional", []string{"professional", "enterprise", "business", "corporate", "solution"}},
	{"casual", []string{"friendly", "easy", "simple", "fun", "relaxed"}},
	{"technical", []string{"technical", "advanced", "sophisticated", "complex", "engineered"}},
	{"innovative", []string{"innovative", "cutting-edge", "revolutionary", "next-generation", "breakthrough"}},
}

var productIndicators = []string{
	"product", "service", "solution", "offering", "feature",
	"capability", "tool", "platform", "system", "software",
}

var pricingKeywords = []string{
	"price", "pricing", "cost", "fee", "subscription", "plan",
	"tier", "package", "bundle", "free", "trial", "$", "€", "£",
}

var offeringHeadingKeywords = []string{"service", "product", "solution", "feature"}

var benefitHeadingKeywords = []string{"benefit", "advantage", "why", "gain", "improve"}

var benefitParagraphKeywords = []string{"benefit", "advantage", "help you", "enable"}

var differentiatorKeywords = []string{"unique", "only", "first", "exclusive", "different", "unlike", "vs", "versus"}

var startupWords = []string{"startup", "founded", "launched", "new"}
var enterpriseWords = []string{"enterprise", "fortune", "established", "since"}
var growthWords = []string{"growing", "expanding", "scaling"}

var countryNames = []string{
	"usa", "united states", "uk", "united kingdom", "canada", "australia",
	"germany", "france", "spain", "italy", "netherlands", "sweden",
	"kenya", "nigeria", "south africa", "ghana", "egypt", "morocco",
	"india", "china", "japan", "singapore", "uae", "saudi arabia",
}
