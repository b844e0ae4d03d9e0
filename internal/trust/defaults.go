package trust

// defaultWeights is the built-in trust table. Values reflect an a priori
// credibility judgment of the publishing domain, independent of content;
// anything not listed gets DefaultWeight.
//
// pib.gov.in is listed once at its news weight (2.2). Video sections of
// otherwise-listed outlets cannot be weighted separately: lookup keys are
// hostnames, so a path-qualified entry would never match.
var defaultWeights = map[string]float64{
	// Government sources
	"cdc.gov":           10.0,
	"nih.gov":           10.0,
	"who.int":           10.0,
	"un.org":            10.0,
	"europa.eu":         10.0,
	"nasa.gov":          10.0,
	"noaa.gov":          10.0,
	"education.gov":     10.0,
	"defense.gov":       10.0,
	"state.gov":         10.0,
	"treasury.gov":      10.0,
	"fbi.gov":           10.0,
	"cia.gov":           10.0,
	"whitehouse.gov":    10.0,
	"congress.gov":      10.0,
	"supreme.court.gov": 10.0,
	"nist.gov":          10.0,
	"usgs.gov":          10.0,
	"epa.gov":           10.0,
	"fda.gov":           10.0,

	// Indian government sources
	"india.gov.in":        10.0,
	"mygov.in":            10.0,
	"nic.in":              10.0,
	"meity.gov.in":        10.0,
	"mohfw.gov.in":        10.0,
	"mea.gov.in":          10.0,
	"mod.gov.in":          10.0,
	"mha.gov.in":          10.0,
	"rbi.org.in":          10.0,
	"supremecourt.gov.in": 10.0,
	"censusindia.gov.in":  10.0,
	"data.gov.in":         10.0,
	"niti.gov.in":         10.0,
	"isro.gov.in":         10.0,
	"drdo.gov.in":         10.0,
	"education.gov.in":    10.0,
	"nhm.gov.in":          10.0,

	// Research and educational institutions
	"harvard.edu":     8.0,
	"mit.edu":         8.0,
	"stanford.edu":    8.0,
	"berkeley.edu":    8.0,
	"columbia.edu":    8.0,
	"princeton.edu":   8.0,
	"yale.edu":        8.0,
	"caltech.edu":     8.0,
	"cornell.edu":     8.0,
	"ox.ac.uk":        8.0,
	"cam.ac.uk":       8.0,
	"imperial.ac.uk":  8.0,
	"edinburgh.ac.uk": 8.0,
	"iisc.ac.in":      8.0,

	// Fact-checking organizations
	"snopes.com":          6.0,
	"factcheck.org":       5.8,
	"politifact.com":      5.6,
	"altnews.in":          5.6,
	"boomlive.in":         5.6,
	"factchecker.in":      5.5,
	"reporters-lab.org":   5.4,
	"climatefeedback.org": 5.4,
	"verificat.cat":       5.4,
	"vishvasnews.com":     5.4,
	"newschecker.in":      5.4,
	"webqoof.com":         5.3,
	"factcrescendo.com":   5.3,

	// International news
	"bbc.com":         5.0,
	"reuters.com":     5.0,
	"theguardian.com": 4.5,
	"nytimes.com":     4.5,
	"apnews.com":      4.2,
	"wsj.com":         4.2,
	"economist.com":   4.2,
	"cfr.org":         4.0,
	"npr.org":         4.0,
	"pbs.org":         4.0,
	"cnn.com":         3.8,
	"euronews.com":    3.8,
	"ft.com":          3.8,
	"bloomberg.com":   3.8,
	"cbsnews.com":     3.5,
	"nbcnews.com":     3.5,
	"abcnews.go.com":  3.3,
	"globalnews.ca":   3.2,
	"smh.com.au":      3.2,
	"theage.com.au":   3.2,
	"stuff.co.nz":     3.2,
	"aljazeera.com":   3.2,
	"france24.com":    3.2,
	"dw.com":          3.2,

	// Indian news
	"thehindu.com":                 3.5,
	"indianexpress.com":            3.5,
	"livemint.com":                 3.3,
	"scroll.in":                    3.2,
	"thewire.in":                   3.2,
	"theprint.in":                  3.0,
	"newslaundry.com":              3.0,
	"caravanmagazine.in":           2.8,
	"tribuneindia.com":             2.8,
	"telegraphindia.com":           2.8,
	"business-standard.com":        2.8,
	"financialexpress.com":         2.8,
	"outlookindia.com":             2.7,
	"timesofindia.indiatimes.com":  2.5,
	"hindustantimes.com":           2.5,
	"economictimes.indiatimes.com": 2.5,
	"thebridge.in":                 2.4,
	"thequint.com":                 2.4,
	"indiatoday.in":                2.4,
	"aninews.in":                   2.2,
	"ndtv.com":                     2.2,
	"indiaspend.com":               2.2,
	"pib.gov.in":                   2.2,
	"prsindia.org":                 2.2,
	"moneycontrol.com":             2.1,
	"firstpost.com":                2.1,
	"newindianexpress.com":         2.1,
	"deccanherald.com":             2.1,
	"dnaindia.com":                 2.0,
	"downtoearth.org.in":           2.0,
	"thehindubusinessline.com":     2.0,

	// Regional Indian news
	"mathrubhumi.com":     1.8,
	"manoramaonline.com":  1.8,
	"anandabazar.com":     1.8,
	"eenadu.net":          1.8,
	"dailythanthi.com":    1.8,
	"amarujala.com":       1.7,
	"jagran.com":          1.7,
	"bhaskar.com":         1.7,
	"sakshi.com":          1.7,
	"lokmat.com":          1.7,
	"punjabkesari.in":     1.6,
	"sandesh.com":         1.6,
	"asomiyapratidin.in":  1.6,
	"prabhatkhabar.com":   1.6,
	"kashmirobserver.net": 1.6,

	// Less reliable sources
	"opindia.com":               0.85,
	"swarajyamag.com":           0.85,
	"tfipost.com":               0.8,
	"postcard.news":             0.7,
	"rightlog.in":               0.7,
	"kreately.in":               0.7,
	"pgurus.com":                0.7,
	"organiser.org":             0.8,
	"intellectualkshatriya.com": 0.7,
	"fakingnews.com":            0.5, // Satire
	"nationalherald.com":        0.85,
	"thestatesman.com":          0.9,

	// Tabloids and entertainment
	"mid-day.com":          0.9,
	"mumbaimirror.com":     0.9,
	"bollywoodhungama.com": 0.8,
	"pinkvilla.com":        0.8,
	"filmfare.com":         0.8,
	"sportskeeda.com":      0.9,

	// Clickbait and dubious sources
	"greatgameindia.com": 0.6,
	"thedailyswitch.com": 0.6,
	"newsbharati.com":    0.7,
	"hindupost.in":       0.7,
	"mynation.net":       0.6,

	// Video-heavy outlets
	"timesnownews.com":   0.95,
	"news18.com":         0.95,
	"abplive.com":        0.95,
	"republicworld.com":  0.85,
	"zeenews.india.com":  0.9,
	"tv9bharatvarsh.com": 0.9,
	"indiatvnews.com":    0.85,
	"news24online.com":   0.85,
}
