package rpc

// Method is an RPC verb accepted by the server's /rpc endpoint. The
// method fixes the shape and arity of the envelope's params.
type Method string

const (
	MethodUse            Method = "use"
	MethodInfo           Method = "info"
	MethodVersion        Method = "version"
	MethodSignUp         Method = "signup"
	MethodSignIn         Method = "signin"
	MethodAuthenticate   Method = "authenticate"
	MethodInvalidate     Method = "invalidate"
	MethodQuery          Method = "query"
	MethodCreate         Method = "create"
	MethodSelect         Method = "select"
	MethodInsert         Method = "insert"
	MethodInsertRelation Method = "insert_relation"
	MethodMerge          Method = "merge"
	MethodPatch          Method = "patch"
	MethodUpdate         Method = "update"
	MethodUpsert         Method = "upsert"
	MethodDelete         Method = "delete"
)
