package runtime

import (
	"github.com/vorin-lang/vorin/registry"
)

// GetAllBuiltinClasses aggregates every built-in class descriptor catalogue
// into the single list Bootstrap registers. Each subsystem keeps its own
// Get*Classes catalogue next to the code it describes; this is the one place
// that assembles them.
func GetAllBuiltinClasses() []*registry.ClassDescriptor {
	var classes []*registry.ClassDescriptor
	classes = append(classes, GetClasses()...)
	classes = append(classes, GetConcurrencyClasses()...)
	classes = append(classes, GetIteratorClasses()...)
	classes = append(classes, GetMySQLiClasses()...)
	classes = append(classes, GetPDOClassDescriptors()...)
	return classes
}

// GetAllBuiltinInterfaces aggregates every built-in interface catalogue.
func GetAllBuiltinInterfaces() []*registry.Interface {
	var interfaces []*registry.Interface
	interfaces = append(interfaces, GetInterfaces()...)
	return interfaces
}

// GetAllBuiltinConstants aggregates every built-in constant into the
// descriptor shape the registry expects, converting the lighter-weight
// Constant and raw-map catalogues some subsystems keep.
func GetAllBuiltinConstants() []*registry.ConstantDescriptor {
	var constants []*registry.ConstantDescriptor
	constants = append(constants, builtinConstants...)

	for _, c := range GetMySQLiConstants() {
		constants = append(constants, &registry.ConstantDescriptor{Name: c.Name, Value: c.Value})
	}

	pdoConstants := GetPDOGlobalConstants()
	for name, val := range pdoConstants {
		constants = append(constants, &registry.ConstantDescriptor{Name: name, Value: val})
	}

	return constants
}
