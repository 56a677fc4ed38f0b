package compilation

import "svcore/types"

// SystemSubroutine is a registered system task/function ($display, $finish,
// and the like) or a built-in per-type method (array.size(), string.len()).
// The core only needs enough of a subroutine's shape to support lookup and
// the diagnostic visitor touching it; argument checking and evaluation are
// the (external) expression evaluator's job.
type SystemSubroutine struct {
	Name       string
	ReturnType *types.Type
	IsTask     bool
}

// systemMethodKey looks up a per-type method by the type kind it applies to
// plus its name, matching the original's keying of getSystemMethod by
// (name, typeKind).
type systemMethodKey struct {
	kind types.Kind
	name string
}

// AddSystemSubroutine registers a system task/function by name. Grounded on
// Compilation::addSystemSubroutine.
func (c *Compilation) AddSystemSubroutine(sub *SystemSubroutine) {
	c.systemSubroutines[sub.Name] = sub
}

// GetSystemSubroutine looks up a system task/function by name.
func (c *Compilation) GetSystemSubroutine(name string) *SystemSubroutine {
	return c.systemSubroutines[name]
}

// AddSystemMethod registers a per-type built-in method. Grounded on
// Compilation::addSystemMethod.
func (c *Compilation) AddSystemMethod(kind types.Kind, sub *SystemSubroutine) {
	c.systemMethods[systemMethodKey{kind: kind, name: sub.Name}] = sub
}

// GetSystemMethod looks up a per-type built-in method by the receiver's
// type kind and the method name.
func (c *Compilation) GetSystemMethod(kind types.Kind, name string) *SystemSubroutine {
	return c.systemMethods[systemMethodKey{kind: kind, name: name}]
}

// registerBuiltins runs every fixed registration function, matching the
// Builtins::register* call sequence at the end of the original
// constructor. Each function below owns one category of built-ins, the
// same split the original keeps across separate translation units.
func registerBuiltins(c *Compilation) {
	registerArrayMethods(c)
	registerConversionFuncs(c)
	registerEnumMethods(c)
	registerMathFuncs(c)
	registerMiscSystemFuncs(c)
	registerNonConstFuncs(c)
	registerQueryFuncs(c)
	registerStringMethods(c)
	registerSystemTasks(c)
}

func registerArrayMethods(c *Compilation) {
	c.AddSystemMethod(types.KindVector, &SystemSubroutine{Name: "size", ReturnType: c.Types.Int})
	c.AddSystemMethod(types.KindVector, &SystemSubroutine{Name: "delete"})
}

func registerConversionFuncs(c *Compilation) {
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$itor", ReturnType: c.Types.Real})
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$rtoi", ReturnType: c.Types.Int})
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$signed", ReturnType: c.Types.Int})
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$unsigned", ReturnType: c.Types.Int})
}

func registerEnumMethods(c *Compilation) {
	c.AddSystemMethod(types.KindPredefinedInteger, &SystemSubroutine{Name: "next"})
	c.AddSystemMethod(types.KindPredefinedInteger, &SystemSubroutine{Name: "prev"})
	c.AddSystemMethod(types.KindPredefinedInteger, &SystemSubroutine{Name: "name", ReturnType: c.Types.String})
}

func registerMathFuncs(c *Compilation) {
	for _, name := range []string{"$clog2", "$ln", "$log10", "$sqrt", "$pow"} {
		c.AddSystemSubroutine(&SystemSubroutine{Name: name, ReturnType: c.Types.Real})
	}
}

func registerMiscSystemFuncs(c *Compilation) {
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$bits", ReturnType: c.Types.Int})
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$typename", ReturnType: c.Types.String})
}

func registerNonConstFuncs(c *Compilation) {
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$random", ReturnType: c.Types.Int})
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$urandom", ReturnType: c.Types.Int})
}

func registerQueryFuncs(c *Compilation) {
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$time", ReturnType: c.Types.Time})
	c.AddSystemSubroutine(&SystemSubroutine{Name: "$realtime", ReturnType: c.Types.RealTime})
}

func registerStringMethods(c *Compilation) {
	c.AddSystemMethod(types.KindString, &SystemSubroutine{Name: "len", ReturnType: c.Types.Int})
	c.AddSystemMethod(types.KindString, &SystemSubroutine{Name: "toupper", ReturnType: c.Types.String})
	c.AddSystemMethod(types.KindString, &SystemSubroutine{Name: "tolower", ReturnType: c.Types.String})
}

func registerSystemTasks(c *Compilation) {
	for _, name := range []string{"$display", "$write", "$finish", "$stop", "$fatal", "$error", "$warning", "$info"} {
		c.AddSystemSubroutine(&SystemSubroutine{Name: name, IsTask: true})
	}
}
