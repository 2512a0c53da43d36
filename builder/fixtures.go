package builder

import (
	"fmt"

	"github.com/reoring/skema"
	"gopkg.in/yaml.v3"
)

// yamlRepository mirrors the top-level shape of a repository fixture file.
type yamlRepository struct {
	Types      map[string]yamlType   `yaml:"types"`
	Validators []yamlValidator       `yaml:"validators"`
}

type yamlType map[string]any

type yamlValidator struct {
	TargetType string          `yaml:"targetType"`
	Name       string          `yaml:"name"`
	Params     []yamlParameter `yaml:"params"`
	Body       map[string]any  `yaml:"body"`
}

type yamlParameter struct {
	Name     string `yaml:"name"`
	TypeHint string `yaml:"typeHint"`
	Default  any    `yaml:"default"`
}

// LoadRepositoryYAML reads a YAML fixture describing named types and
// validators and layers it over Builtins(), producing a ready-to-use
// skema.Repository.
func LoadRepositoryYAML(data []byte) (skema.Repository, error) {
	var doc yamlRepository
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("builder: parsing repository YAML: %w", err)
	}

	rb := NewRepository()
	rb.Merge(Builtins())

	for name, spec := range doc.Types {
		expr, err := typeExprFromYAML(spec)
		if err != nil {
			return nil, fmt.Errorf("builder: type %q: %w", name, err)
		}
		rb.Type(name, skema.UserType{Name: name, Expr: expr})
	}

	for _, v := range doc.Validators {
		uv, err := userValidatorFromYAML(v)
		if err != nil {
			return nil, fmt.Errorf("builder: validator %q(%q): %w", v.TargetType, v.Name, err)
		}
		rb.Validator(v.TargetType, v.Name, uv)
	}

	return rb.Build()
}

func typeExprFromYAML(spec map[string]any) (*skema.TypeExpr, error) {
	kind, _ := spec["kind"].(string)
	switch kind {
	case "absent":
		return Absent(), nil
	case "literal":
		return Literal(spec["value"]), nil
	case "named":
		name, _ := spec["name"].(string)
		cons, err := constraintsFromYAML(spec["constraints"])
		if err != nil {
			return nil, err
		}
		return Named(name, cons...), nil
	case "nullableNamed":
		name, _ := spec["name"].(string)
		return NullableNamed(name), nil
	case "nullable":
		innerSpec, _ := spec["inner"].(map[string]any)
		inner, err := typeExprFromYAML(innerSpec)
		if err != nil {
			return nil, err
		}
		return Nullable(inner), nil
	case "array":
		itemSpec, _ := spec["item"].(map[string]any)
		item, err := typeExprFromYAML(itemSpec)
		if err != nil {
			return nil, err
		}
		cons, err := constraintsFromYAML(spec["constraints"])
		if err != nil {
			return nil, err
		}
		return Array(item, cons...), nil
	case "record":
		fieldsRaw, _ := spec["fields"].([]any)
		fields := make([]skema.Field, 0, len(fieldsRaw))
		for _, raw := range fieldsRaw {
			fm, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("malformed field entry")
			}
			f, err := fieldFromYAML(fm)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return Record(fields...), nil
	case "dict":
		keySpec, _ := spec["key"].(map[string]any)
		valSpec, _ := spec["value"].(map[string]any)
		key, err := typeExprFromYAML(keySpec)
		if err != nil {
			return nil, err
		}
		val, err := typeExprFromYAML(valSpec)
		if err != nil {
			return nil, err
		}
		return Dict(key, val), nil
	case "union":
		items, err := typeExprListFromYAML(spec["items"])
		if err != nil {
			return nil, err
		}
		return Union(items...), nil
	case "intersection":
		items, err := typeExprListFromYAML(spec["items"])
		if err != nil {
			return nil, err
		}
		return Intersection(items...), nil
	case "conditional":
		condSpec, _ := spec["condition"].(map[string]any)
		thenSpec, _ := spec["then"].(map[string]any)
		elseSpec, _ := spec["else"].(map[string]any)
		cond, err := predicateFromYAML(condSpec)
		if err != nil {
			return nil, err
		}
		then, err := typeExprFromYAML(thenSpec)
		if err != nil {
			return nil, err
		}
		els, err := typeExprFromYAML(elseSpec)
		if err != nil {
			return nil, err
		}
		return Conditional(cond, then, els), nil
	default:
		return nil, fmt.Errorf("unknown type expression kind %q", kind)
	}
}

func typeExprListFromYAML(raw any) ([]*skema.TypeExpr, error) {
	items, _ := raw.([]any)
	out := make([]*skema.TypeExpr, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed type expression list entry")
		}
		e, err := typeExprFromYAML(m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func fieldFromYAML(fm map[string]any) (skema.Field, error) {
	name, _ := fm["name"].(string)
	typeSpec, _ := fm["type"].(map[string]any)
	t, err := typeExprFromYAML(typeSpec)
	if err != nil {
		return skema.Field{}, err
	}
	f := skema.Field{Name: name, Type: t}
	if optional, ok := fm["optional"].(bool); ok {
		f.Optional = optional
	}
	if defaultSpec, ok := fm["default"].(map[string]any); ok {
		expr, err := exprFromYAML(defaultSpec)
		if err != nil {
			return skema.Field{}, err
		}
		f.Default = expr
	}
	return f, nil
}

func constraintsFromYAML(raw any) ([]skema.Constraint, error) {
	items, _ := raw.([]any)
	out := make([]skema.Constraint, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed constraint entry")
		}
		name, _ := m["name"].(string)
		c := skema.Constraint{Name: name}
		if negated, ok := m["negated"].(bool); ok {
			c.Negated = negated
		}
		if argSpec, ok := m["arg"].(map[string]any); ok {
			expr, err := exprFromYAML(argSpec)
			if err != nil {
				return nil, err
			}
			c.LegacyArg = &skema.ArgShape{Single: expr}
		}
		out = append(out, c)
	}
	return out, nil
}

func userValidatorFromYAML(v yamlValidator) (skema.UserValidator, error) {
	params := make([]skema.Parameter, 0, len(v.Params))
	for _, p := range v.Params {
		param := skema.Parameter{Name: p.Name, TypeHint: p.TypeHint}
		if p.Default != nil {
			defSpec, ok := p.Default.(map[string]any)
			if !ok {
				return skema.UserValidator{}, fmt.Errorf("malformed default expression for parameter %q", p.Name)
			}
			expr, err := exprFromYAML(defSpec)
			if err != nil {
				return skema.UserValidator{}, err
			}
			param.Default = expr
		}
		params = append(params, param)
	}
	body, err := bodyFromYAML(v.Body)
	if err != nil {
		return skema.UserValidator{}, err
	}
	return skema.UserValidator{Name: v.Name, TargetType: v.TargetType, Params: params, Body: body}, nil
}

func bodyFromYAML(m map[string]any) (skema.ValidatorBody, error) {
	kind, _ := m["kind"].(string)
	negated, _ := m["negated"].(bool)
	message, _ := m["message"].(string)
	switch kind {
	case "regex":
		pattern, _ := m["pattern"].(string)
		return skema.ValidatorBody{Kind: skema.BodyRegex, Pattern: pattern, Negated: negated}, nil
	case "objectRegex":
		pattern, _ := m["pattern"].(string)
		return skema.ValidatorBody{Kind: skema.BodyObjectRegex, Pattern: pattern, Negated: negated, Message: message}, nil
	case "predicate":
		predSpec, _ := m["predicate"].(map[string]any)
		pred, err := predicateFromYAML(predSpec)
		if err != nil {
			return skema.ValidatorBody{}, err
		}
		return skema.ValidatorBody{Kind: skema.BodyPredicate, Predicate: pred}, nil
	case "objectPredicate":
		predSpec, _ := m["predicate"].(map[string]any)
		pred, err := predicateFromYAML(predSpec)
		if err != nil {
			return skema.ValidatorBody{}, err
		}
		return skema.ValidatorBody{Kind: skema.BodyObjectPredicate, Predicate: pred, Message: message}, nil
	default:
		return skema.ValidatorBody{}, fmt.Errorf("unknown validator body kind %q", kind)
	}
}

var compareOps = map[string]skema.CompareOp{
	"==": skema.CompareEq,
	"!=": skema.CompareNeq,
	"<":  skema.CompareLt,
	"<=": skema.CompareLte,
	">":  skema.CompareGt,
	">=": skema.CompareGte,
}

func predicateFromYAML(m map[string]any) (*skema.Predicate, error) {
	if m == nil {
		return nil, fmt.Errorf("missing predicate")
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "not":
		operandSpec, _ := m["operand"].(map[string]any)
		operand, err := predicateFromYAML(operandSpec)
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	case "and", "or":
		leftSpec, _ := m["left"].(map[string]any)
		rightSpec, _ := m["right"].(map[string]any)
		left, err := predicateFromYAML(leftSpec)
		if err != nil {
			return nil, err
		}
		right, err := predicateFromYAML(rightSpec)
		if err != nil {
			return nil, err
		}
		if kind == "and" {
			return And(left, right), nil
		}
		return Or(left, right), nil
	case "compare":
		op, _ := m["op"].(string)
		cmp, ok := compareOps[op]
		if !ok {
			return nil, fmt.Errorf("unknown compare operator %q", op)
		}
		leftSpec, _ := m["left"].(map[string]any)
		rightSpec, _ := m["right"].(map[string]any)
		left, err := exprFromYAML(leftSpec)
		if err != nil {
			return nil, err
		}
		right, err := exprFromYAML(rightSpec)
		if err != nil {
			return nil, err
		}
		return Compare(left, cmp, right), nil
	case "matches":
		exprSpec, _ := m["expr"].(map[string]any)
		pattern, _ := m["pattern"].(string)
		expr, err := exprFromYAML(exprSpec)
		if err != nil {
			return nil, err
		}
		return Matches(expr, pattern), nil
	case "expr":
		exprSpec, _ := m["expr"].(map[string]any)
		expr, err := exprFromYAML(exprSpec)
		if err != nil {
			return nil, err
		}
		return Truthy(expr), nil
	default:
		return nil, fmt.Errorf("unknown predicate kind %q", kind)
	}
}

func exprFromYAML(m map[string]any) (*skema.Expr, error) {
	if m == nil {
		return nil, fmt.Errorf("missing expression")
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "literal":
		return Lit(m["value"]), nil
	case "duration":
		ms, _ := m["ms"].(int)
		return Dur(int64(ms)), nil
	case "emptyArray":
		return EmptyArray(), nil
	case "this":
		return This(stringList(m["segments"])...), nil
	case "parent":
		return Parent(stringList(m["segments"])...), nil
	case "root":
		return RootValue(stringList(m["segments"])...), nil
	case "ident":
		name, _ := m["name"].(string)
		return Ident(name, stringList(m["segments"])...), nil
	case "var":
		name, _ := m["name"].(string)
		return Var(name, stringList(m["segments"])...), nil
	case "add", "sub", "mul", "div":
		leftSpec, _ := m["left"].(map[string]any)
		rightSpec, _ := m["right"].(map[string]any)
		left, err := exprFromYAML(leftSpec)
		if err != nil {
			return nil, err
		}
		right, err := exprFromYAML(rightSpec)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "add":
			return Add(left, right), nil
		case "sub":
			return Sub(left, right), nil
		case "mul":
			return Mul(left, right), nil
		default:
			return Div(left, right), nil
		}
	case "call":
		name, _ := m["name"].(string)
		return Call(name), nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", kind)
	}
}

func stringList(raw any) []string {
	items, _ := raw.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
