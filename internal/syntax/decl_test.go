package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Kinds(t *testing.T) {
	src := "/// doc\n//! inner\n// plain\nlet s = r#\"raw \"q\"\"#; 'a' 'static 0x1d00_ffff => \"esc\\\"aped\""
	toks := Tokenize(src)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		DocComment, InnerDocComment, Comment,
		Ident, Ident, Punct, String, Punct,
		Char, Lifetime, Number, Punct, String,
	}, kinds)

	assert.Equal(t, 4, toks[3].Line)
	assert.Equal(t, "=>", toks[11].Text)
	assert.Equal(t, `raw "q"`, Unquote(toks[6].Text))
	assert.Equal(t, `esc"aped`, Unquote(toks[12].Text))
}

func TestTokenize_UnterminatedInput(t *testing.T) {
	// must not panic or loop
	for _, src := range []string{`"open`, `/* never closed`, `r#"raw`, `'`, `b`} {
		assert.NotPanics(t, func() { Tokenize(src) }, src)
	}
}

func TestFindConsts_NestedValue(t *testing.T) {
	src := `
/// Maximum block weight
pub const MAX_BLOCK_WEIGHT: u64 = 4_000_000;
pub const TABLE: [u8; 2] = [1, 2];
pub const NESTED: Foo = Foo { a: bar(1; 2), b: 3 };
pub const MULTI: u64 =
    21_000_000
    * 100_000_000;
const PRIVATE: u8 = 1;
pub const fn helper() -> u8 { 1 }
`
	f := Parse(src)
	decls := f.FindConsts()
	require.Len(t, decls, 4)

	assert.Equal(t, "MAX_BLOCK_WEIGHT", decls[0].Name)
	assert.Equal(t, "u64", decls[0].Type)
	assert.Equal(t, "4_000_000", decls[0].Value)
	assert.Equal(t, 3, decls[0].Line)

	assert.Equal(t, "[u8; 2]", decls[1].Type)
	assert.Equal(t, "[1, 2]", decls[1].Value)

	assert.Equal(t, "Foo { a: bar(1; 2), b: 3 }", decls[2].Value)

	assert.Equal(t, "MULTI", decls[3].Name)
	assert.Contains(t, decls[3].Value, "* 100_000_000")
}

func TestFindConsts_UnbalancedIsSkipped(t *testing.T) {
	f := Parse("pub const BROKEN: u8 = (1;\npub const OK: u8 = 2;")
	decls := f.FindConsts()
	for _, d := range decls {
		assert.NotEqual(t, "BROKEN", d.Name)
	}
}

func TestFindFuncs_ZeroArgWithNestedBody(t *testing.T) {
	src := `
fn default_max_peers() -> usize { 8 }
fn default_cache() -> u64 {
    if cfg!(test) { 1 } else { 512 * 1024 * 1024 }
}
fn default_with_arg(x: u8) -> u8 { x }
fn default_no_return() { }
fn other() -> u8 { 1 }
`
	fns := Parse(src).FindFuncs("default_")
	require.Len(t, fns, 2)
	assert.Equal(t, "default_max_peers", fns[0].Name)
	assert.Equal(t, "usize", fns[0].Return)
	assert.Equal(t, " 8 ", fns[0].Body)
	assert.Contains(t, fns[1].Body, "512 * 1024 * 1024")
}

const rpcErrors = `
#[derive(Debug, Clone)]
pub enum RpcErrorCode {
    ParseError,
    /// Transaction was rejected by policy
    TxRejected(String),
    #[allow(dead_code)]
    BlockNotFound { hash: String },
    Unmapped,
}

impl RpcErrorCode {
    pub fn code(&self) -> i32 {
        match self {
            RpcErrorCode::ParseError => -32700,
            RpcErrorCode::TxRejected(_) | Self::BlockNotFound { .. } => -25,
            RpcErrorCode::Ghost => 1
        }
    }

    pub fn message(&self) -> &'static str {
        match self {
            RpcErrorCode::ParseError => "Parse error",
            RpcErrorCode::TxRejected(_) => "Transaction rejected",
            _ => "Unknown",
        }
    }
}
`

func TestFindEnum_Variants(t *testing.T) {
	f := Parse(rpcErrors)
	enum, ok := f.FindEnum("RpcErrorCode")
	require.True(t, ok)

	require.Len(t, enum.Attrs, 1)
	assert.Equal(t, "derive", enum.Attrs[0].Name)

	var names []string
	for _, v := range enum.Variants {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"ParseError", "TxRejected", "BlockNotFound", "Unmapped"}, names)

	tx, _ := enum.Variant("TxRejected")
	assert.Equal(t, PayloadTuple, tx.Payload)
	assert.Equal(t, "Transaction was rejected by policy", tx.Doc)

	block, _ := enum.Variant("BlockNotFound")
	assert.Equal(t, PayloadStruct, block.Payload)
	_, hasAllow := block.Attr("allow")
	assert.True(t, hasAllow)
}

func TestArms_ResolveOrPatternsAndLastArm(t *testing.T) {
	f := Parse(rpcErrors)
	code, ok := f.FindImplFunc("RpcErrorCode", "code")
	require.True(t, ok)

	arms := f.Arms(code, "RpcErrorCode")
	require.Len(t, arms, 3)
	assert.Equal(t, []string{"ParseError"}, arms[0].Variants)
	assert.Equal(t, "-32700", arms[0].Value)
	assert.Equal(t, Number, arms[0].Kind)
	assert.Equal(t, []string{"TxRejected", "BlockNotFound"}, arms[1].Variants)
	assert.Equal(t, "-25", arms[1].Value)
	assert.Equal(t, []string{"Ghost"}, arms[2].Variants)
	assert.Equal(t, "1", arms[2].Value)

	msg, ok := f.FindImplFunc("RpcErrorCode", "message")
	require.True(t, ok)
	msgArms := f.Arms(msg, "RpcErrorCode")
	require.Len(t, msgArms, 2)
	assert.Equal(t, String, msgArms[1].Kind)
	assert.Equal(t, "Transaction rejected", Unquote(msgArms[1].Value))

	blocks := Parse(`
impl RpcErrorCode {
    pub fn code(&self) -> i32 {
        match self {
            RpcErrorCode::InvalidParams => { -32602 }
            RpcErrorCode::BlockNotFound => -5,
            RpcErrorCode::TxRejected(r) => { log(r); -26 },
            RpcErrorCode::Empty => {}
            RpcErrorCode::Last => 1
        }
    }
}
`)
	code, ok = blocks.FindImplFunc("RpcErrorCode", "code")
	require.True(t, ok)
	arms = blocks.Arms(code, "RpcErrorCode")
	require.Len(t, arms, 5)
	assert.Equal(t, []string{"InvalidParams"}, arms[0].Variants)
	assert.Equal(t, "-32602", arms[0].Value)
	assert.Equal(t, Number, arms[0].Kind)
	assert.Equal(t, []string{"BlockNotFound"}, arms[1].Variants)
	assert.Equal(t, "-5", arms[1].Value)
	assert.Equal(t, Number, arms[1].Kind)
	assert.Equal(t, "{ log(r); -26 }", arms[2].Value)
	assert.Equal(t, EOF, arms[2].Kind)
	assert.Equal(t, "{}", arms[3].Value)
	assert.Equal(t, EOF, arms[3].Kind)
	assert.Equal(t, []string{"Last"}, arms[4].Variants)
	assert.Equal(t, "1", arms[4].Value)
}

func TestFindImplFunc_TraitImpl(t *testing.T) {
	src := `
impl fmt::Display for ConsensusError {
    fn fmt(&self, f: &mut fmt::Formatter) -> fmt::Result { Ok(()) }
}
`
	fn, ok := Parse(src).FindImplFunc("ConsensusError", "fmt")
	require.True(t, ok)
	assert.Equal(t, "fmt::Result", fn.Return)

	_, ok = Parse(src).FindImplFunc("Formatter", "fmt")
	assert.False(t, ok)
}

func TestFindConstArray(t *testing.T) {
	src := `
const OTHER: &[&str] = &["nope"];
const ACTIVE_COMMANDS: &[&str] = &[
    "getblockcount", // chain height
    "stop",
];
`
	methods, ok := Parse(src).FindConstArray("ACTIVE_COMMANDS")
	require.True(t, ok)
	assert.Equal(t, []string{"getblockcount", "stop"}, methods)

	_, ok = Parse(src).FindConstArray("MISSING")
	assert.False(t, ok)
}

func TestHasWildcardArm(t *testing.T) {
	f := Parse(rpcErrors)
	code, _ := f.FindImplFunc("RpcErrorCode", "code")
	msg, _ := f.FindImplFunc("RpcErrorCode", "message")
	assert.False(t, f.HasWildcardArm(code))
	assert.True(t, f.HasWildcardArm(msg))
}
