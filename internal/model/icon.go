package model

// Icon names a glyph the pages know how to render.
type Icon string

const (
	IconHouse        Icon = "House"
	IconDollarSign   Icon = "DollarSign"
	IconSettings     Icon = "Settings"
	IconShoppingBag  Icon = "ShoppingBag"
	IconShoppingCart Icon = "ShoppingCart"
	IconMail         Icon = "Mail"
	IconUsers        Icon = "Users"
	IconBell         Icon = "Bell"
	IconInfo         Icon = "Info"
	IconTrendingUp   Icon = "TrendingUp"
	IconActivity     Icon = "SquareActivity"
	IconCheck        Icon = "CheckCircle"
	IconClock        Icon = "Clock"

	// IconDefault is rendered in place of any unrecognised name.
	IconDefault Icon = "Circle"
)

var knownIcons = map[Icon]struct{}{
	IconHouse:        {},
	IconDollarSign:   {},
	IconSettings:     {},
	IconShoppingBag:  {},
	IconShoppingCart: {},
	IconMail:         {},
	IconUsers:        {},
	IconBell:         {},
	IconInfo:         {},
	IconTrendingUp:   {},
	IconActivity:     {},
	IconCheck:        {},
	IconClock:        {},
	IconDefault:      {},
}

// ParseIcon maps a name from the document to a known icon. Unknown names
// yield IconDefault and ok=false.
func ParseIcon(name string) (icon Icon, ok bool) {
	if _, ok := knownIcons[Icon(name)]; ok {
		return Icon(name), true
	}
	return IconDefault, false
}
