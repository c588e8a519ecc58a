// Package constituents holds the static index membership and GICS sector
// classification used to backfill the sector field the quote endpoint does
// not reliably provide.
package constituents

import "sort"

// Info describes one index constituent.
type Info struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// Market identifiers accepted by Get.
const (
	MarketSP500     = "sp500"
	MarketNasdaq100 = "nasdaq100"
)

// sectorMap groups symbols by GICS sector. Kept grouped by sector for
// maintainability; the reverse lookup is built at init.
var sectorMap = map[string][]string{
	"Technology": {
		"AAPL", "ACN", "ADBE", "ADI", "ADP", "ADSK", "AMAT", "AMD", "ANET", "ANSS", "APH",
		"AVGO", "CDNS", "CDW", "CPAY", "CRM", "CRWD", "CSCO", "CTSH", "DELL", "ENPH",
		"EPAM", "FFIV", "FICO", "FIS", "FISV", "FSLR", "FTNT", "GEN", "GLW", "GPN",
		"GRMN", "HPE", "HPQ", "IBM", "INTC", "INTU", "IT", "JKHY", "KEYS", "KLAC",
		"LRCX", "MCHP", "MPWR", "MRVL", "MSFT", "MSI", "MU", "NOW", "NTAP", "NVDA",
		"NXPI", "ON", "ORCL", "PANW", "PLTR", "PTC", "PYPL", "QCOM", "QRVO", "ROP",
		"SMCI", "SNPS", "STX", "SWKS", "TDY", "TEL", "TER", "TRMB", "TXN", "TYL",
		"VRSN", "WDC", "ZBRA",
		// NASDAQ-only
		"APP", "ARM", "ASML", "COIN", "DDOG", "GFS", "MDB", "MSTR", "TEAM", "TTD", "ZS",
	},
	"Health Care": {
		"A", "ABBV", "ABT", "ALGN", "AMGN", "BAX", "BDX", "BIIB", "BIO", "BMY", "BSX",
		"CAH", "CNC", "COO", "COR", "CRL", "CTVA", "CVS", "DXCM", "EW", "GEHC", "GILD",
		"HCA", "HOLX", "HSIC", "HUM", "IDXX", "ILMN", "INCY", "IQV", "ISRG", "JNJ",
		"LH", "LLY", "MCK", "MDT", "MET", "MOH", "MRK", "MRNA", "MTD", "PODD", "PFE",
		"REGN", "RVTY", "STE", "SYK", "TECH", "TMO", "UHS", "UNH", "VRTX", "VTRS",
		"WAT", "WST", "ZBH", "ZTS",
		"AZN", "MELI",
	},
	"Financials": {
		"ACGL", "AFL", "AIG", "AIZ", "AJG", "ALL", "AMP", "AON", "APO", "AXP", "BAC",
		"BEN", "BK", "BKR", "BLK", "BRK-B", "BRO", "BX", "C", "CB", "CBOE", "CFG",
		"CINF", "CMA", "CME", "COF", "DFS", "ERIE", "FDS", "FI", "FICO", "FITB",
		"FRT", "GL", "GS", "HBAN", "ICE", "INVH", "IVZ", "JPM", "KEY", "KIM", "KKR",
		"L", "MA", "MCO", "MKTX", "MMC", "MS", "MSCI", "MTB", "NDAQ", "NTRS", "PFG",
		"PNC", "PRU", "PSA", "REG", "RF", "RJF", "SBAC", "SCHW", "SPGI", "STT",
		"SYF", "TFC", "TROW", "TRV", "USB", "V", "VICI", "WFC", "WRB", "WTW",
	},
	"Consumer Discretionary": {
		"ABNB", "AMZN", "APTV", "AZO", "BBWI", "BBY", "BKNG", "BWA", "CCL", "CHD",
		"CMG", "CZR", "DAY", "DG", "DHI", "DIS", "DLTR", "DPZ", "DRI", "EBAY", "EXPE",
		"F", "GOOG", "GOOGL", "GPC", "GM", "GNRC", "GWW", "HAS", "HD", "LEN", "LKQ",
		"LOW", "LULU", "LVS", "MAR", "MCD", "MGM", "MHK", "MTCH", "NCLH", "NKE",
		"NVR", "ORLY", "PARA", "PHM", "POOL", "PVH", "RCL", "RL", "ROST", "SBUX",
		"TGT", "TJX", "TPR", "TSCO", "TSLA", "TTWO", "ULTA", "VFC", "WDAY", "WYNN", "YUM",
		"DASH", "PDD",
	},
	"Communication Services": {
		"CHTR", "CMCSA", "DIS", "EA", "FOX", "FOXA", "GOOG", "GOOGL", "IPG", "LYV",
		"META", "MTCH", "NFLX", "NWS", "NWSA", "OMC", "PARA", "T", "TMUS", "TTWO",
		"VZ", "WBD",
	},
	"Industrials": {
		"AOS", "AXON", "BA", "BLDR", "CAT", "CHRW", "CMI", "CPRT", "CSX", "CTAS",
		"DAL", "DE", "DOV", "EMR", "ETN", "FAST", "FDX", "FTV", "GD", "GE", "GEV",
		"GWW", "HII", "HON", "HWM", "IR", "ITW", "J", "JBHT", "JBL", "JCI", "LDOS",
		"LHX", "LMT", "MAS", "MLM", "MMM", "NDSN", "NOC", "NSC", "ODFL", "OTIS",
		"PCAR", "PH", "PNR", "PWR", "ROK", "ROL", "RSG", "RTX", "SNA", "SWK", "SW",
		"TDG", "TT", "TXT", "UAL", "UBER", "UNP", "UPS", "URI", "VRSK", "WAB", "WM",
		"XYL",
	},
	"Consumer Staples": {
		"ADM", "BF-B", "BG", "CAG", "CHD", "CL", "CLX", "COST", "CPB", "DG", "EL",
		"GIS", "HRL", "HSY", "K", "KDP", "KHC", "KMB", "KO", "KR", "KVUE", "LW",
		"MDLZ", "MKC", "MNST", "MO", "PEP", "PG", "PM", "SJM", "STZ", "SYY", "TAP",
		"TGT", "TSN", "WBA", "WMT",
	},
	"Energy": {
		"APA", "BKR", "COP", "CTRA", "CVX", "DVN", "EOG", "EQT", "FANG", "HAL",
		"HES", "KMI", "LNG", "MPC", "MRO", "OKE", "OXY", "PSX", "SLB", "TRGP",
		"VLO", "WMB", "XOM",
	},
	"Utilities": {
		"AEE", "AEP", "AES", "ATO", "AWK", "CEG", "CMS", "CNP", "D", "DTE", "DUK",
		"ED", "EIX", "ES", "ETR", "EVRG", "EXC", "FE", "NEE", "NI", "NRG", "PCG",
		"PEG", "PNW", "PPL", "SO", "SRE", "VST", "WEC", "XEL",
	},
	"Real Estate": {
		"AMT", "ARE", "AVB", "BXP", "CCI", "CPT", "CSGP", "DLR", "EQIX", "EQR",
		"ESS", "EXR", "FRT", "HST", "INVH", "IRM", "KIM", "MAA", "O", "PLD", "PSA",
		"REG", "SBAC", "SPG", "UDR", "VICI", "VTR", "WELL", "WY",
	},
	"Materials": {
		"AMCR", "APD", "AVY", "BG", "CE", "CF", "DD", "DOW", "ECL", "EMN", "FCX",
		"FMC", "IFF", "IP", "LIN", "LYB", "MLM", "MOS", "NEM", "NUE", "PKG", "PPG",
		"SEE", "SHW", "STLD", "VMC", "WRK",
	},
}

// symbolSector is the reverse lookup, built at init. Some symbols appear
// under multiple sectors due to reclassification; sectors are visited in
// name order and the first assignment wins, so the choice is stable.
var symbolSector = func() map[string]string {
	names := make([]string, 0, len(sectorMap))
	for sector := range sectorMap {
		names = append(names, sector)
	}
	sort.Strings(names)

	m := make(map[string]string)
	for _, sector := range names {
		for _, sym := range sectorMap[sector] {
			if _, ok := m[sym]; !ok {
				m[sym] = sector
			}
		}
	}
	return m
}()

// SectorFor returns the GICS sector for a symbol, or "" if unclassified.
func SectorFor(symbol string) string {
	return symbolSector[symbol]
}

// SectorsFor returns the sector per symbol, omitting unclassified symbols.
func SectorsFor(symbols []string) map[string]string {
	result := make(map[string]string)
	for _, sym := range symbols {
		if sector, ok := symbolSector[sym]; ok {
			result[sym] = sector
		}
	}
	return result
}

// Get returns the constituents of the given market index, or nil for an
// unknown market.
func Get(market string) []Info {
	switch market {
	case MarketSP500:
		return toInfos(sp500Symbols)
	case MarketNasdaq100:
		return toInfos(nasdaq100Symbols)
	default:
		return nil
	}
}

func toInfos(symbols []string) []Info {
	infos := make([]Info, 0, len(symbols))
	for _, symbol := range symbols {
		infos = append(infos, Info{
			Symbol: symbol,
			Name:   symbol,
			Sector: symbolSector[symbol],
		})
	}
	return infos
}
