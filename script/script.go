// Package script runs tengo scripts against an editing session. Scripts see
// an immutable `editor` map of functions for bulk placement work:
//
//	add(kind, x, y)   -> tag string, or error
//	move(tag, x, y)   -> bool
//	remove(tag)       -> bool
//	list(kind)        -> [{tag, x, y}, ...]
//	count(kind)       -> int
//	level()           -> active level id
//	save()            -> bool
//	log(args...)
//
// The tengo standard library modules are importable.
package script

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/placement"
	"github.com/milk9111/mapeditor/session"
)

// Run compiles src and runs it until it returns or ctx is done.
func Run(ctx context.Context, sess *session.Session, src []byte, log *logrus.Entry) error {
	if sess == nil {
		return fmt.Errorf("script: nil session")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "script")

	s := tengo.NewScript(src)
	if err := s.Add("editor", buildEditor(sess, log)); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	before := sess.Changes()
	if _, err := s.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	log.WithFields(logrus.Fields{
		"level":   sess.Active(),
		"changes": sess.Changes() - before,
	}).Debug("script finished")
	return nil
}

// RunFile reads a script from path and runs it.
func RunFile(ctx context.Context, sess *session.Session, path string, log *logrus.Entry) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: read %s: %w", path, err)
	}
	return Run(ctx, sess, src, log)
}

func buildEditor(sess *session.Session, log *logrus.Entry) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["add"] = &tengo.UserFunction{Name: "add", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind, err := kindArg(args[0], log)
		if err != nil {
			return errorObject(err), nil
		}
		pos, err := positionArgs(args[1], args[2])
		if err != nil {
			return nil, err
		}
		e, err := sess.AddEntity(kind, pos)
		if err != nil {
			return errorObject(err), nil
		}
		return &tengo.String{Value: e.Tag.String()}, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		tag, ok := tagArg(args[0], log)
		if !ok {
			return tengo.FalseValue, nil
		}
		pos, err := positionArgs(args[1], args[2])
		if err != nil {
			return nil, err
		}
		if err := sess.MoveEntity(tag, pos); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		tag, ok := tagArg(args[0], log)
		if !ok {
			return tengo.FalseValue, nil
		}
		if err := sess.RemoveEntity(tag); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["list"] = &tengo.UserFunction{Name: "list", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind, err := kindArg(args[0], log)
		if err != nil {
			return errorObject(err), nil
		}
		ents := sess.Entities(kind)
		out := make([]tengo.Object, 0, len(ents))
		for _, e := range ents {
			out = append(out, &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"tag": &tengo.String{Value: e.Tag.String()},
				"x":   &tengo.Float{Value: e.Position.X},
				"y":   &tengo.Float{Value: e.Position.Y},
			}})
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["count"] = &tengo.UserFunction{Name: "count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind, err := kindArg(args[0], log)
		if err != nil {
			return errorObject(err), nil
		}
		return &tengo.Int{Value: int64(len(sess.Entities(kind)))}, nil
	}}

	values["level"] = &tengo.UserFunction{Name: "level", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: string(sess.Active())}, nil
	}}

	values["save"] = &tengo.UserFunction{Name: "save", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if err := sess.Save(); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func kindArg(obj tengo.Object, log *logrus.Entry) (placement.Kind, error) {
	var err error
	name, ok := obj.(*tengo.String)
	if !ok {
		err = fmt.Errorf("kind must be a string, got %s", obj.TypeName())
	} else {
		var kind placement.Kind
		if kind, err = placement.KindFromName(strings.TrimSpace(name.Value)); err == nil {
			return kind, nil
		}
	}
	log.WithError(err).Warn("script used an unknown kind")
	return 0, err
}

func tagArg(obj tengo.Object, log *logrus.Entry) (placement.Tag, bool) {
	tag, err := placement.ParseTag(strings.TrimSpace(objectAsString(obj)))
	if err != nil {
		log.WithError(err).Warn("script used a malformed tag")
		return placement.Tag{}, false
	}
	return tag, true
}

func positionArgs(xo, yo tengo.Object) (placement.Position, error) {
	x, ok := tengo.ToFloat64(xo)
	if !ok {
		return placement.Position{}, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int/float", Found: xo.TypeName()}
	}
	y, ok := tengo.ToFloat64(yo)
	if !ok {
		return placement.Position{}, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int/float", Found: yo.TypeName()}
	}
	return placement.Position{X: x, Y: y}, nil
}

func errorObject(err error) tengo.Object {
	return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
