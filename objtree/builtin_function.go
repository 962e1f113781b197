package objtree

import (
	"github.com/npillmayer/uic/langtype"
)

// BuiltinFunction enumerates the functions of the runtime.
type BuiltinFunction uint8

// Builtin functions
const (
	FnGetWindowScaleFactor BuiltinFunction = iota
	FnDebug
	FnMod
	FnRound
	FnCeil
	FnFloor
	FnSqrt
	FnAbs
	FnCos
	FnSin
	FnTan
	FnACos
	FnASin
	FnATan
	FnSetFocusItem
	FnShowPopupWindow
	FnStringToFloat
	FnStringIsFloat
	FnImplicitHorizontalLayoutInfo
	FnImplicitVerticalLayoutInfo
	FnColorBrighter
	FnColorDarker
	FnImageSize
	FnRgb
	FnRegisterCustomFontByPath
	FnRegisterCustomFontByMemory
)

var builtinFunctionNames = [...]string{
	FnGetWindowScaleFactor:         "GetWindowScaleFactor",
	FnDebug:                        "Debug",
	FnMod:                          "Mod",
	FnRound:                        "Round",
	FnCeil:                         "Ceil",
	FnFloor:                        "Floor",
	FnSqrt:                         "Sqrt",
	FnAbs:                          "Abs",
	FnCos:                          "Cos",
	FnSin:                          "Sin",
	FnTan:                          "Tan",
	FnACos:                         "ACos",
	FnASin:                         "ASin",
	FnATan:                         "ATan",
	FnSetFocusItem:                 "SetFocusItem",
	FnShowPopupWindow:              "ShowPopupWindow",
	FnStringToFloat:                "StringToFloat",
	FnStringIsFloat:                "StringIsFloat",
	FnImplicitHorizontalLayoutInfo: "ImplicitLayoutInfo(Horizontal)",
	FnImplicitVerticalLayoutInfo:   "ImplicitLayoutInfo(Vertical)",
	FnColorBrighter:                "ColorBrighter",
	FnColorDarker:                  "ColorDarker",
	FnImageSize:                    "ImageSize",
	FnRgb:                          "Rgb",
	FnRegisterCustomFontByPath:     "RegisterCustomFontByPath",
	FnRegisterCustomFontByMemory:   "RegisterCustomFontByMemory",
}

func (f BuiltinFunction) String() string {
	if int(f) < len(builtinFunctionNames) {
		return builtinFunctionNames[f]
	}
	return "<unknown builtin>"
}

// ImplicitLayoutInfo returns the layout info function for an orientation.
func ImplicitLayoutInfo(o Orientation) BuiltinFunction {
	if o == Vertical {
		return FnImplicitVerticalLayoutInfo
	}
	return FnImplicitHorizontalLayoutInfo
}

func fn(ret langtype.Type, args ...langtype.Type) *langtype.Function {
	return &langtype.Function{Args: args, Return: ret}
}

// imageSizeType is the result type of FnImageSize.
var imageSizeType = &langtype.Struct{
	Fields: langtype.NewFields(
		langtype.Field{Name: "width", Type: langtype.Int32},
		langtype.Field{Name: "height", Type: langtype.Int32},
	),
	Name: "Size",
}

// Ty returns the signature of a builtin function.
func (f BuiltinFunction) Ty() *langtype.Function {
	switch f {
	case FnGetWindowScaleFactor:
		return fn(langtype.UnitProduct{{Unit: langtype.UnitPhx, Power: 1}, {Unit: langtype.UnitPx, Power: -1}})
	case FnDebug:
		return fn(langtype.Void, langtype.String)
	case FnMod:
		return fn(langtype.Int32, langtype.Int32, langtype.Int32)
	case FnRound, FnCeil, FnFloor:
		return fn(langtype.Int32, langtype.Float32)
	case FnSqrt, FnAbs:
		return fn(langtype.Float32, langtype.Float32)
	case FnCos, FnSin, FnTan:
		return fn(langtype.Float32, langtype.Angle)
	case FnACos, FnASin, FnATan:
		return fn(langtype.Angle, langtype.Float32)
	case FnSetFocusItem, FnShowPopupWindow:
		return fn(langtype.Void, langtype.ElementReference)
	case FnStringToFloat:
		return fn(langtype.Float32, langtype.String)
	case FnStringIsFloat:
		return fn(langtype.Bool, langtype.String)
	case FnImplicitHorizontalLayoutInfo, FnImplicitVerticalLayoutInfo:
		return fn(LayoutInfoType(), langtype.ElementReference)
	case FnColorBrighter, FnColorDarker:
		return fn(langtype.Color, langtype.Color, langtype.Float32)
	case FnImageSize:
		return fn(imageSizeType, langtype.Image)
	case FnRgb:
		return fn(langtype.Color, langtype.Int32, langtype.Int32, langtype.Int32, langtype.Float32)
	case FnRegisterCustomFontByPath:
		return fn(langtype.Void, langtype.String)
	case FnRegisterCustomFontByMemory:
		return fn(langtype.Void, langtype.Int32)
	}
	panic("objtree: unknown builtin function")
}

// IsPure is true for functions without side effects whose result depends
// only on their arguments.
func (f BuiltinFunction) IsPure() bool {
	switch f {
	case FnGetWindowScaleFactor, FnSetFocusItem, FnShowPopupWindow,
		FnImplicitHorizontalLayoutInfo, FnImplicitVerticalLayoutInfo,
		FnRegisterCustomFontByPath, FnRegisterCustomFontByMemory:
		return false
	}
	return true
}

// BuiltinMacroFunction enumerates functions which are expanded at compile
// time.
type BuiltinMacroFunction uint8

// Builtin macros
const (
	MacroMin BuiltinMacroFunction = iota
	MacroMax
	MacroCubicBezier
	MacroRgb
	MacroDebug
)

func (m BuiltinMacroFunction) String() string {
	switch m {
	case MacroMin:
		return "Min"
	case MacroMax:
		return "Max"
	case MacroCubicBezier:
		return "CubicBezier"
	case MacroRgb:
		return "Rgb"
	case MacroDebug:
		return "Debug"
	}
	return "<unknown macro>"
}
