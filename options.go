package syntacalc

// DefaultPrec is the precision in bits of a context created without Prec.
const DefaultPrec = 64

// DefaultPlaces is the number of decimal places to which a context created
// without Places rounds its results.
const DefaultPlaces = 10

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt   uint
	placesopt int
)

func (precopt) ctxOption()   {}
func (placesopt) ctxOption() {}

// Prec sets the precision of calculations in bits. A precision of zero selects
// DefaultPrec.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Places sets the number of decimal places to which results are rounded.
// Negative values select zero places.
func Places(places int) ContextOption {
	return placesopt(places)
}

// apply sets options on a context. Later options override earlier ones.
func (ctx *Context) apply(opts []ContextOption) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			ctx.prec = uint(opt)
			if ctx.prec == 0 {
				ctx.prec = DefaultPrec
			}
		case placesopt:
			ctx.places = int(opt)
			if ctx.places < 0 {
				ctx.places = 0
			}
		default:
			panic("syntacalc: unknown option type")
		}
	}
}
