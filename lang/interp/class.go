package interp

// Class is a Lox class value: a name, an optional superclass link, and
// separate instance-method and static-method tables.
type Class struct {
	Name          string
	Superclass    *Class
	Methods       map[string]*Function
	StaticMethods map[string]*Function
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running its init method (if any) with
// args; init's own return value is discarded in favor of the instance.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FindMethod looks up name in this class's instance methods, then walks the
// superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// FindStaticMethod looks up name in this class's static methods, then walks
// the superclass chain. Ordinary property reads on a class value (Get) use
// this; a super.method() expression resolves instance methods only, never
// this table.
func (c *Class) FindStaticMethod(name string) *Function {
	if m, ok := c.StaticMethods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindStaticMethod(name)
	}
	return nil
}

func (c *Class) String() string { return c.Name }
