package runtime

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/vorin-lang/vorin/registry"
	"github.com/vorin-lang/vorin/values"
)

// Extension interface for external extensions
type Extension interface {
	GetName() string
	GetVersion() string
	GetDescription() string
	GetDependencies() []string
	GetLoadOrder() int
	Register(reg *registry.Registry) error
	Unregister(reg *registry.Registry) error
}

// BaseExtension provides a foundation for building extensions
type BaseExtension struct {
	name         string
	version      string
	description  string
	dependencies []string
	loadOrder    int
	registered   bool

	// Collected entities during registration
	registeredConstants []string
	registeredFunctions []string
	registeredClasses   []string
}

// NewBaseExtension creates a new base extension
func NewBaseExtension(name, version, description string) *BaseExtension {
	return &BaseExtension{
		name:                name,
		version:             version,
		description:         description,
		loadOrder:           100, // Default load order
		registeredConstants: make([]string, 0),
		registeredFunctions: make([]string, 0),
		registeredClasses:   make([]string, 0),
	}
}

// Interface implementation
func (be *BaseExtension) GetName() string           { return be.name }
func (be *BaseExtension) GetVersion() string        { return be.version }
func (be *BaseExtension) GetDescription() string    { return be.description }
func (be *BaseExtension) GetDependencies() []string { return be.dependencies }
func (be *BaseExtension) GetLoadOrder() int         { return be.loadOrder }

// SetLoadOrder sets the extension load order (lower numbers load first)
func (be *BaseExtension) SetLoadOrder(order int) {
	be.loadOrder = order
}

// SetDependencies sets the extension dependencies
func (be *BaseExtension) SetDependencies(deps []string) {
	be.dependencies = deps
}

// Helper methods for extensions
func (be *BaseExtension) RegisterConstant(reg *registry.Registry, name string, value *values.Value) error {
	if err := reg.RegisterConstant(&registry.ConstantDescriptor{Name: name, Value: value}); err != nil {
		return err
	}
	be.registeredConstants = append(be.registeredConstants, name)
	return nil
}

func (be *BaseExtension) RegisterFunction(reg *registry.Registry, fn *registry.Function) error {
	if err := reg.RegisterFunction(fn); err != nil {
		return err
	}
	be.registeredFunctions = append(be.registeredFunctions, fn.Name)
	return nil
}

func (be *BaseExtension) RegisterClass(reg *registry.Registry, class *registry.ClassDescriptor) error {
	if err := reg.RegisterClass(class); err != nil {
		return err
	}
	be.registeredClasses = append(be.registeredClasses, class.Name)
	return nil
}

// Default implementations that can be overridden
func (be *BaseExtension) Register(reg *registry.Registry) error {
	be.registered = true
	return nil
}

func (be *BaseExtension) Unregister(reg *registry.Registry) error {
	if !be.registered {
		return nil
	}

	for _, name := range be.registeredConstants {
		reg.UnregisterConstant(name)
	}
	for _, name := range be.registeredFunctions {
		reg.UnregisterFunction(name)
	}
	for _, name := range be.registeredClasses {
		reg.UnregisterClass(name)
	}

	be.registeredConstants = be.registeredConstants[:0]
	be.registeredFunctions = be.registeredFunctions[:0]
	be.registeredClasses = be.registeredClasses[:0]

	be.registered = false
	return nil
}

// ExtensionDescriptor is the lightweight record the manager keeps for each
// registered extension, independent of the registry's own Function/Class
// bookkeeping. LoadID distinguishes one registration of an extension from
// another across unload/reload cycles (two processes loading the same named
// extension get different LoadIDs), the same role spl_object_hash plays for
// objects.
type ExtensionDescriptor struct {
	LoadID       string
	Name         string
	Version      string
	Description  string
	LoadOrder    int
	Dependencies []string
}

// ExtensionManager manages extension loading and dependency resolution
type ExtensionManager struct {
	registry    *registry.Registry
	extensions  map[string]Extension
	descriptors map[string]*ExtensionDescriptor
	loadOrder   []Extension
}

// NewExtensionManager creates a new extension manager
func NewExtensionManager(reg *registry.Registry) *ExtensionManager {
	return &ExtensionManager{
		registry:    reg,
		extensions:  make(map[string]Extension),
		descriptors: make(map[string]*ExtensionDescriptor),
		loadOrder:   make([]Extension, 0),
	}
}

// RegisterExtension registers an extension
func (em *ExtensionManager) RegisterExtension(ext Extension) error {
	name := ext.GetName()

	// Check if already registered
	if _, exists := em.extensions[name]; exists {
		return fmt.Errorf("extension already registered: %s", name)
	}

	// Validate dependencies
	if err := em.validateDependencies(ext); err != nil {
		return fmt.Errorf("dependency validation failed for %s: %v", name, err)
	}

	em.extensions[name] = ext
	em.descriptors[name] = &ExtensionDescriptor{
		LoadID:       uuid.NewString(),
		Name:         ext.GetName(),
		Version:      ext.GetVersion(),
		Description:  ext.GetDescription(),
		LoadOrder:    ext.GetLoadOrder(),
		Dependencies: ext.GetDependencies(),
	}

	em.rebuildLoadOrder()

	return nil
}

// LoadExtension loads a registered extension
func (em *ExtensionManager) LoadExtension(name string) error {
	ext, exists := em.extensions[name]
	if !exists {
		return fmt.Errorf("extension not registered: %s", name)
	}

	// Load dependencies first
	for _, dep := range ext.GetDependencies() {
		if err := em.LoadExtension(dep); err != nil {
			return fmt.Errorf("failed to load dependency %s for %s: %v", dep, name, err)
		}
	}

	// Register with runtime
	return ext.Register(em.registry)
}

// UnloadExtension unloads an extension
func (em *ExtensionManager) UnloadExtension(name string) error {
	ext, exists := em.extensions[name]
	if !exists {
		return fmt.Errorf("extension not registered: %s", name)
	}

	// Check for dependents
	for _, other := range em.extensions {
		for _, dep := range other.GetDependencies() {
			if dep == name {
				return fmt.Errorf("cannot unload %s: extension %s depends on it", name, other.GetName())
			}
		}
	}

	if err := ext.Unregister(em.registry); err != nil {
		return err
	}
	delete(em.extensions, name)
	delete(em.descriptors, name)
	em.rebuildLoadOrder()
	return nil
}

// LoadAllExtensions loads all registered extensions in dependency order
func (em *ExtensionManager) LoadAllExtensions() error {
	for _, ext := range em.loadOrder {
		if err := ext.Register(em.registry); err != nil {
			return fmt.Errorf("failed to load extension %s: %v", ext.GetName(), err)
		}
	}
	return nil
}

// validateDependencies validates extension dependencies
func (em *ExtensionManager) validateDependencies(ext Extension) error {
	for _, dep := range ext.GetDependencies() {
		if _, exists := em.extensions[dep]; !exists {
			return fmt.Errorf("missing dependency: %s", dep)
		}
	}

	// Check for circular dependencies
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	return em.checkCircularDependencies(ext.GetName(), ext, visited, recursionStack)
}

// checkCircularDependencies checks for circular dependencies
func (em *ExtensionManager) checkCircularDependencies(name string, ext Extension, visited, recursionStack map[string]bool) error {
	visited[name] = true
	recursionStack[name] = true

	for _, dep := range ext.GetDependencies() {
		if !visited[dep] {
			if depExt, exists := em.extensions[dep]; exists {
				if err := em.checkCircularDependencies(dep, depExt, visited, recursionStack); err != nil {
					return err
				}
			}
		} else if recursionStack[dep] {
			return fmt.Errorf("circular dependency detected: %s -> %s", name, dep)
		}
	}

	recursionStack[name] = false
	return nil
}

// rebuildLoadOrder rebuilds the extension load order based on dependencies
func (em *ExtensionManager) rebuildLoadOrder() {
	extensions := make([]Extension, 0, len(em.extensions))
	for _, ext := range em.extensions {
		extensions = append(extensions, ext)
	}

	// Sort by load order, then by dependency topology
	sort.Slice(extensions, func(i, j int) bool {
		orderI := extensions[i].GetLoadOrder()
		orderJ := extensions[j].GetLoadOrder()

		if orderI != orderJ {
			return orderI < orderJ
		}

		// If same load order, sort by dependencies
		return em.hasDependency(extensions[j], extensions[i])
	})

	em.loadOrder = extensions
}

// hasDependency checks if ext1 depends on ext2
func (em *ExtensionManager) hasDependency(ext1, ext2 Extension) bool {
	for _, dep := range ext1.GetDependencies() {
		if dep == ext2.GetName() {
			return true
		}
		if depExt, exists := em.extensions[dep]; exists {
			if em.hasDependency(depExt, ext2) {
				return true
			}
		}
	}
	return false
}

// GetExtensionNames returns all registered extension names
func (em *ExtensionManager) GetExtensionNames() []string {
	names := make([]string, 0, len(em.extensions))
	for name := range em.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetExtension returns a registered extension
func (em *ExtensionManager) GetExtension(name string) (Extension, bool) {
	ext, exists := em.extensions[name]
	return ext, exists
}

// GetExtensionDescriptor returns the bookkeeping record for a registered
// extension, including the uuid minted for this particular load.
func (em *ExtensionManager) GetExtensionDescriptor(name string) (*ExtensionDescriptor, bool) {
	d, exists := em.descriptors[name]
	return d, exists
}

// IsExtensionLoaded checks if an extension is registered
func (em *ExtensionManager) IsExtensionLoaded(name string) bool {
	_, exists := em.extensions[name]
	return exists
}
