package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/refdocs/internal/model"
	"github.com/ppiankov/refdocs/internal/syntax"
)

// ErrorCodeExtractor resolves an error enum against its code() and message()
// dispatch functions. The enum is parsed once and every arm is checked
// against its declared variants.
type ErrorCodeExtractor struct {
	enum string
	skip map[string]bool
}

// NewErrorCodeExtractor creates an extractor for the named enum. Variants in
// skip are resolved and checked but left out of the result.
func NewErrorCodeExtractor(enum string, skip []string) *ErrorCodeExtractor {
	set := make(map[string]bool, len(skip))
	for _, s := range skip {
		set[s] = true
	}
	return &ErrorCodeExtractor{enum: enum, skip: set}
}

// ErrorCodes is the outcome of resolving one error enum
type ErrorCodes struct {
	Found       bool // the enum is declared in the source
	Entries     []model.ErrorCodeEntry
	Diagnostics []model.Diagnostic
}

// Extract resolves the enum in src. A source without the enum yields
// Found == false and no diagnostics.
func (e *ErrorCodeExtractor) Extract(src string) ErrorCodes {
	f := syntax.Parse(src)
	enum, ok := f.FindEnum(e.enum)
	if !ok {
		return ErrorCodes{}
	}
	out := ErrorCodes{Found: true}

	codes := make(map[string]int)
	messages := make(map[string]string)
	// variants with an arm, including arms whose value could not be read
	codeArms := make(map[string]bool)
	msgArms := make(map[string]bool)
	codeFn, hasCodeFn := f.FindImplFunc(e.enum, "code")
	msgFn, hasMsgFn := f.FindImplFunc(e.enum, "message")

	if hasCodeFn {
		out.Diagnostics = append(out.Diagnostics, e.resolve(f, enum, codeFn, func(arm syntax.Arm, variant string) *model.Diagnostic {
			codeArms[variant] = true
			if arm.Kind != syntax.Number {
				return badValue(variant, "code", arm)
			}
			code, err := strconv.Atoi(strings.ReplaceAll(strings.ReplaceAll(arm.Value, " ", ""), "_", ""))
			if err != nil {
				return badValue(variant, "code", arm)
			}
			codes[variant] = code
			return nil
		})...)
	} else {
		out.Diagnostics = append(out.Diagnostics, model.Diagnostic{
			Kind:    model.DiagMissingCode,
			Subject: e.enum,
			Message: "no code() method found",
			Line:    enum.Line,
		})
	}

	if hasMsgFn {
		out.Diagnostics = append(out.Diagnostics, e.resolve(f, enum, msgFn, func(arm syntax.Arm, variant string) *model.Diagnostic {
			msgArms[variant] = true
			if arm.Kind != syntax.String {
				return badValue(variant, "message", arm)
			}
			messages[variant] = syntax.Unquote(arm.Value)
			return nil
		})...)
	} else {
		out.Diagnostics = append(out.Diagnostics, model.Diagnostic{
			Kind:    model.DiagMissingMessage,
			Subject: e.enum,
			Message: "no message() method found",
			Line:    enum.Line,
		})
	}

	codeWildcard := hasCodeFn && f.HasWildcardArm(codeFn)
	msgWildcard := hasMsgFn && f.HasWildcardArm(msgFn)

	for _, v := range enum.Variants {
		code, hasCode := codes[v.Name]
		message := messages[v.Name]
		if hasCodeFn && !codeArms[v.Name] && !codeWildcard {
			out.Diagnostics = append(out.Diagnostics, model.Diagnostic{
				Kind:    model.DiagMissingCode,
				Subject: v.Name,
				Message: "variant has no code() arm",
				Line:    v.Line,
			})
		}
		if hasMsgFn && !msgArms[v.Name] && !msgWildcard {
			out.Diagnostics = append(out.Diagnostics, model.Diagnostic{
				Kind:    model.DiagMissingMessage,
				Subject: v.Name,
				Message: "variant has no message() arm",
				Line:    v.Line,
			})
		}
		if e.skip[v.Name] {
			continue
		}
		out.Entries = append(out.Entries, model.ErrorCodeEntry{
			Fact: model.Fact{
				Name:        v.Name,
				Description: StripMarkdownLinks(v.Doc),
				Source:      e.enum,
				Line:        v.Line,
			},
			Code:    code,
			HasCode: hasCode,
			Message: message,
		})
	}
	return out
}

// resolve walks the arms of a dispatch function, reporting arms that name
// variants the enum does not declare and handing the rest to record
func (e *ErrorCodeExtractor) resolve(f *syntax.File, enum *syntax.EnumDecl, fn syntax.FuncDecl, record func(syntax.Arm, string) *model.Diagnostic) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, arm := range f.Arms(fn, e.enum) {
		for _, name := range arm.Variants {
			if _, ok := enum.Variant(name); !ok {
				diags = append(diags, model.Diagnostic{
					Kind:    model.DiagUnknownVariant,
					Subject: name,
					Message: fmt.Sprintf("%s() arm names a variant not declared in %s", fn.Name, e.enum),
					Line:    arm.Line,
				})
				continue
			}
			if d := record(arm, name); d != nil {
				diags = append(diags, *d)
			}
		}
	}
	return diags
}

func badValue(variant, fn string, arm syntax.Arm) *model.Diagnostic {
	return &model.Diagnostic{
		Kind:    model.DiagBadValue,
		Subject: variant,
		Message: fmt.Sprintf("%s() arm value %q is not a literal", fn, arm.Value),
		Line:    arm.Line,
	}
}

// StandardRPCErrors returns the JSON-RPC 2.0 reserved error codes
func StandardRPCErrors() []model.ErrorCodeEntry {
	return []model.ErrorCodeEntry{
		knownError("ParseError", -32700, "Parse error", "Invalid JSON was received"),
		knownError("InvalidRequest", -32600, "Invalid Request", "The JSON sent is not a valid Request object"),
		knownError("MethodNotFound", -32601, "Method not found", "The method does not exist"),
		knownError("InvalidParams", -32602, "Invalid params", "Invalid method parameter(s)"),
		knownError("InternalError", -32603, "Internal error", "Internal JSON-RPC error"),
	}
}

// CompatRPCErrors returns the Bitcoin Core compatible error codes
func CompatRPCErrors() []model.ErrorCodeEntry {
	return []model.ErrorCodeEntry{
		knownError("TxAlreadyInChain", -1, "Transaction already in block chain", "Transaction is already in the blockchain"),
		knownError("TxRejected", -25, "Transaction rejected", "Transaction was rejected"),
		knownError("TxMissingInputs", -1, "Missing inputs", "Transaction references non-existent inputs"),
		knownError("TxAlreadyInMempool", -27, "Transaction already in mempool", "Transaction is already in the mempool"),
		knownError("BlockNotFound", -5, "Block not found", "Block hash not found"),
		knownError("TxNotFound", -5, "Transaction not found", "Transaction hash not found"),
		knownError("UtxoNotFound", -5, "No such UTXO", "UTXO not found"),
	}
}

func knownError(variant string, code int, message, desc string) model.ErrorCodeEntry {
	return model.ErrorCodeEntry{
		Fact:    model.Fact{Name: variant, Description: desc, Source: "known"},
		Code:    code,
		HasCode: true,
		Message: message,
	}
}

// ConsensusErrorExtractor lists the variants of an attribute-tagged error
// enum with the message from each variant's #[error("...")] attribute
type ConsensusErrorExtractor struct {
	enum string
}

// NewConsensusErrorExtractor creates an extractor for the named enum
func NewConsensusErrorExtractor(enum string) *ConsensusErrorExtractor {
	return &ConsensusErrorExtractor{enum: enum}
}

// Extract returns one fact per variant, or false when the enum is absent or
// not tagged with an enum-level #[error(...)] attribute. Variants without an
// error message are described by their name.
func (e *ConsensusErrorExtractor) Extract(src string) ([]model.Fact, bool) {
	enum, ok := syntax.Parse(src).FindEnum(e.enum)
	if !ok || !hasAttr(enum.Attrs, "error") {
		return nil, false
	}
	facts := make([]model.Fact, 0, len(enum.Variants))
	for _, v := range enum.Variants {
		desc := v.Name
		if attr, ok := v.Attr("error"); ok && len(attr.Strings) > 0 {
			desc = attr.Strings[0]
		}
		facts = append(facts, model.Fact{
			Name:        v.Name,
			Description: desc,
			Source:      e.enum,
			Line:        v.Line,
		})
	}
	return facts, true
}

func hasAttr(attrs []syntax.Attribute, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}
