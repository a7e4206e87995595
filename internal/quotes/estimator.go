package quotes

import (
	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/money"
)

// defaultBasePrice applies when the service/size pair has no table entry.
const defaultBasePrice = money.Cents(29900)

// additionalServiceFee is charged per extra service on top of the base price.
const additionalServiceFee = money.Cents(5000)

var basePrices = map[string]map[string]money.Cents{
	bookings.ServiceResidentialMoving: {
		bookings.SizeStudio:      29900,
		bookings.SizeTwoBedroom:  59900,
		bookings.SizeFourBedroom: 99900,
	},
	bookings.ServiceCommercialMoving: {
		bookings.SizeOfficeSmall: 79900,
		bookings.SizeOfficeLarge: 149900,
	},
	bookings.ServiceHouseCleaning: {
		bookings.SizeStudio:      14900,
		bookings.SizeTwoBedroom:  22900,
		bookings.SizeFourBedroom: 34900,
	},
	bookings.ServiceOfficeCleaning: {
		bookings.SizeOfficeSmall: 9900,
		bookings.SizeOfficeLarge: 19900,
	},
	bookings.ServiceFullService: {
		bookings.SizeStudio:      39900,
		bookings.SizeTwoBedroom:  69900,
		bookings.SizeFourBedroom: 119900,
	},
}

// Estimate prices a quote from the service/size table plus a flat fee per
// additional service.
func Estimate(serviceType, moveSize string, additionalServices []string) money.Cents {
	price := defaultBasePrice
	if sizes, ok := basePrices[serviceType]; ok {
		if base, ok := sizes[moveSize]; ok {
			price = base
		}
	}
	return price + money.Cents(len(additionalServices))*additionalServiceFee
}
