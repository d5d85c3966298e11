package closures

// CarSpec holds the values a car is built from
type CarSpec struct {
	Model          string
	Name           string
	Color          string
	ManufacturedAt string
}

// DefaultCarSpec returns the car used throughout the examples
func DefaultCarSpec() CarSpec {
	return CarSpec{
		Model:          "Model 1",
		Name:           "Toyota",
		Color:          "Black",
		ManufacturedAt: "24/2025",
	}
}

// Car exposes two read-only views over the same captured fields.
// Model never touches name or color, Details never touches model or date.
type Car struct {
	Model   func() (model, manufacturedAt string)
	Details func() (name, color string)
}

// MakeCar captures a copy of spec and returns the views over it
func MakeCar(spec CarSpec, opts ...Option) Car {
	o := newOptions(opts)

	model := spec.Model
	name := spec.Name
	color := spec.Color
	manufacturedAt := spec.ManufacturedAt

	carModel := func() (string, string) {
		o.reporter.Report(model)
		o.reporter.Report(manufacturedAt)
		o.observe(FactoryCar, OpModel, nil)
		return model, manufacturedAt
	}

	carDetails := func() (string, string) {
		o.reporter.Report(name)
		o.reporter.Report(color)
		o.observe(FactoryCar, OpDetails, nil)
		return name, color
	}

	o.observe(FactoryCar, OpCreate, nil)

	return Car{Model: carModel, Details: carDetails}
}
