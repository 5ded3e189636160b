package renderer

// Fit describes the font-size budget of one text field.
type Fit struct {
	Start    float64
	Floor    float64
	MaxWidth float64
}

// FitFontSize shrinks the size one point at a time from Start until measure(size) fits MaxWidth
// or Floor is reached. The floor wins over the width budget, so long text may still overflow.
func FitFontSize(measure func(size float64) float64, fit Fit) float64 {
	size := fit.Start
	for measure(size) > fit.MaxWidth && size > fit.Floor {
		size--
	}
	return size
}

func nameFit(pageWidth float64) Fit {
	return Fit{Start: 18, Floor: 12, MaxWidth: pageWidth - 100}
}

func eventFit(pageWidth float64) Fit {
	return Fit{Start: 20, Floor: 12, MaxWidth: pageWidth - 150}
}

func collegeFit(pageWidth float64) Fit {
	return Fit{Start: 30, Floor: 10, MaxWidth: pageWidth/2 - 50}
}
