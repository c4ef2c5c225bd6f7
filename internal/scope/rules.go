package scope

// Default rule tables for the UCI ICS crawl.

// DefaultDomains are matched as substrings of the lowercased hostname, not
// anchored at a label boundary.
var DefaultDomains = []string{
	"ics.uci.edu",
	"cs.uci.edu",
	"informatics.uci.edu",
	"stat.uci.edu",
}

// DefaultTraps are substrings that mark calendar/tag listings and other
// URL spaces that never end.
var DefaultTraps = []string{
	"/events/tag/",
	"/events/category/",
	"/events/list/",
	"/events/month/",
	"/events/week/",
	"/events/day/",
	"ical=",
	"tribe-bar-date=",
	"gitlab.ics.uci.edu",
	"/events/",
}

// DefaultLowValuePrefixes are path prefixes with almost no text per page.
var DefaultLowValuePrefixes = []string{
	"/~dechter/books/", // textbook mirror
	"/author/",         // author listing
}

// DefaultRedundant marks listings that duplicate content reachable elsewhere.
var DefaultRedundant = []string{
	"/people/",
}

// DefaultExtensions are rejected when they end the lowercased URL path.
var DefaultExtensions = []string{
	"css", "js", "bmp", "gif", "jpg", "jpeg", "ico",
	"png", "tif", "tiff", "mid", "mp2", "mp3", "mp4",
	"wav", "avi", "mov", "mpeg", "ram", "m4v", "mkv", "ogg", "ogv", "pdf",
	"ps", "eps", "tex", "ppt", "pptx", "doc", "docx", "xls", "xlsx", "names",
	"data", "dat", "exe", "bz2", "tar", "msi", "bin", "7z", "psd", "dmg", "iso",
	"epub", "dll", "cnf", "tgz", "sha1",
	"thmx", "mso", "arff", "rtf", "jar", "csv",
	"rm", "smil", "wmv", "swf", "wma", "zip", "rar", "gz",
}
