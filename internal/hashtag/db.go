package hashtag

// curatedHashtags is the proven UK property hashtag database, keyed by
// category. Category keys are produced by the normalize* helpers.
var curatedHashtags = map[string][]string{
	"general": {
		"#PropertyForSale", "#NewListing", "#JustListed", "#HomeForSale",
		"#RealEstate", "#PropertyUK", "#UKProperty", "#DreamHome",
		"#HouseHunting", "#HomeSweetHome", "#PropertyMarket", "#MovingHome",
		"#NewHome", "#ForSale", "#OnTheMarket", "#PropertySearch",
	},

	// Property types
	"detached": {
		"#DetachedHouse", "#DetachedHome", "#FamilyHome", "#DetachedProperty",
		"#SpaceLiving", "#GardenLovers", "#PrivateGarden",
	},
	"semi_detached": {
		"#SemiDetached", "#SemiDetachedHouse", "#FamilyHome", "#SuburbanLiving",
	},
	"terraced": {
		"#TerracedHouse", "#TerraceHome", "#PeriodProperty", "#CharacterHome",
	},
	"flat": {
		"#FlatForSale", "#ApartmentForSale", "#CityLiving", "#ModernLiving",
		"#ApartmentLife", "#FlatHunting", "#CityApartment",
	},
	"cottage": {
		"#CottageLife", "#CountryCottage", "#PeriodCottage", "#RuralLiving",
		"#CottageCore", "#CountryLiving", "#QuaintCottage", "#EnglishCottage",
	},
	"bungalow": {
		"#Bungalow", "#BungalowLife", "#SingleStorey", "#RetirementHome",
		"#AccessibleHome", "#GroundFloorLiving",
	},
	"penthouse": {
		"#Penthouse", "#LuxuryLiving", "#PenthouseLife", "#CityViews",
		"#LuxuryProperty", "#HighRiseLiving",
	},
	"mansion": {
		"#MansionForSale", "#LuxuryHome", "#GrandHome", "#PrestigeProperty",
		"#LuxuryRealEstate", "#DreamMansion",
	},

	// UK regions and cities
	"london": {
		"#LondonProperty", "#LondonHomes", "#LondonRealEstate", "#PropertyLondon",
		"#LondonLiving", "#CapitalLiving", "#LondonLife",
	},
	"manchester": {
		"#ManchesterProperty", "#ManchesterHomes", "#PropertyManchester",
		"#ManchesterLiving", "#NorthWestProperty",
	},
	"birmingham": {
		"#BirminghamProperty", "#BirminghamHomes", "#PropertyBirmingham",
		"#MidlandsProperty", "#BrumHomes",
	},
	"bristol": {
		"#BristolProperty", "#BristolHomes", "#PropertyBristol",
		"#SouthWestProperty", "#BristolLiving",
	},
	"edinburgh": {
		"#EdinburghProperty", "#EdinburghHomes", "#PropertyEdinburgh",
		"#ScotlandProperty", "#ScottishHomes",
	},
	"leeds": {
		"#LeedsProperty", "#LeedsHomes", "#PropertyLeeds",
		"#YorkshireProperty", "#WestYorkshire",
	},
	"liverpool": {
		"#LiverpoolProperty", "#LiverpoolHomes", "#PropertyLiverpool",
		"#MerseysideProperty",
	},
	"cotswolds": {
		"#CotswoldsProperty", "#CotswoldsHomes", "#CotswoldLiving",
		"#CotswoldLife", "#GloucestershireProperty", "#RuralCotswolds",
	},
	"surrey": {
		"#SurreyProperty", "#SurreyHomes", "#PropertySurrey",
		"#SurreyLiving", "#HomeCounties",
	},
	"kent": {
		"#KentProperty", "#KentHomes", "#PropertyKent",
		"#GardenOfEngland", "#KentLiving",
	},
	"sussex": {
		"#SussexProperty", "#SussexHomes", "#PropertySussex",
		"#EastSussex", "#WestSussex",
	},
	"cornwall": {
		"#CornwallProperty", "#CornwallHomes", "#PropertyCornwall",
		"#CornishProperty", "#CoastalLiving",
	},
	"devon": {
		"#DevonProperty", "#DevonHomes", "#PropertyDevon",
		"#SouthDevon", "#DevonLiving",
	},
	"yorkshire": {
		"#YorkshireProperty", "#YorkshireHomes", "#PropertyYorkshire",
		"#NorthYorkshire", "#YorkshireLiving",
	},
	"scotland": {
		"#ScotlandProperty", "#ScottishHomes", "#PropertyScotland",
		"#HighlandsProperty", "#ScottishLiving",
	},
	"wales": {
		"#WalesProperty", "#WelshHomes", "#PropertyWales",
		"#WelshProperty", "#WalesLiving",
	},

	// Target audiences
	"first_time_buyers": {
		"#FirstTimeBuyer", "#FirstHome", "#GetOnTheLadder", "#StarterHome",
		"#FirstTimeHome", "#PropertyLadder", "#FTB",
	},
	"families": {
		"#FamilyHome", "#FamilyHouse", "#GrowingFamily", "#FamilyLiving",
		"#ChildFriendly", "#SchoolCatchment", "#FamilyFriendly",
	},
	"investors": {
		"#PropertyInvestment", "#BTL", "#BuyToLet", "#PropertyPortfolio",
		"#InvestmentProperty", "#RentalProperty", "#PropertyInvestor",
	},
	"downsizers": {
		"#Downsizing", "#DownsizeHome", "#RetirementProperty", "#CompactLiving",
		"#EmptyNesters", "#NextChapter",
	},
	"luxury": {
		"#LuxuryProperty", "#PrestigeHomes", "#LuxuryRealEstate", "#PrimeProperty",
		"#ExclusiveHomes", "#HighEndProperty", "#LuxuryLiving",
	},

	// Features
	"garden": {
		"#GardenLovers", "#OutdoorSpace", "#GardenGoals", "#GardenLife",
		"#SouthFacingGarden", "#LargeGarden",
	},
	"parking": {
		"#Driveway", "#Garage", "#OffStreetParking", "#DoubleGarage",
		"#ParkingSpace",
	},
	"period": {
		"#PeriodProperty", "#PeriodHome", "#CharacterProperty", "#OriginalFeatures",
		"#VictorianHome", "#GeorgianProperty", "#EdwardianHome",
	},
	"modern": {
		"#ModernHome", "#ContemporaryLiving", "#NewBuild", "#ModernDesign",
		"#OpenPlanLiving",
	},
	"renovation": {
		"#DoerUpper", "#RenovationProject", "#PropertyPotential", "#FixerUpper",
		"#ProjectProperty",
	},
	"views": {
		"#PropertyWithViews", "#CountryViews", "#SeaViews", "#RoomWithAView",
		"#PanoramicViews",
	},

	// Seasonal
	"spring": {
		"#SpringProperty", "#SpringMarket", "#SpringMove", "#NewBeginnings",
	},
	"summer": {
		"#SummerMove", "#SummerProperty", "#GardenSeason",
	},
	"autumn": {
		"#AutumnMove", "#AutumnProperty", "#CozyHome",
	},
	"winter": {
		"#WinterMove", "#NewYearNewHome", "#ChristmasMove",
	},

	// Instagram performs better with these
	"instagram_optimized": {
		"#PropertyGoals", "#HomeInspo", "#InteriorGoals", "#HouseGoals",
		"#DreamHouseGoals", "#HomeDecor", "#InteriorDesign", "#Househunters",
	},

	"engagement": {
		"#PropertyTour", "#HouseTour", "#VirtualTour", "#WalkThrough",
		"#BeforeAndAfter", "#PropertyOfTheDay", "#HomeOfTheDay",
	},
}
