package depot

// expandInvokables turns invokable shorthand into the equivalent alias and
// factory entries. An identifier naming its own type only needs a factory;
// any other identifier becomes an alias of the type, which gets the factory.
func expandInvokables(invokables map[string]string) (map[string]string, map[string]FactoryRef) {
	aliases := make(map[string]string)
	factories := make(map[string]FactoryRef, len(invokables))

	for id, class := range invokables {
		if class == "" {
			class = id
		}

		if id != class {
			aliases[id] = class
		}
		factories[class] = Class(InvokableFactoryClass)
	}

	return aliases, factories
}
