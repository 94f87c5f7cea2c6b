package typemap

// builtins is the builtin declared-type table. Keys are normalized (lower
// case, single interior spaces). Integer variants carry an explicit-integer
// validator constraint; JSON-like types render as an open string-keyed
// mapping.
var builtins = map[string]Mapping{
	DefaultKey: {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string"},

	// Character types
	"text":              {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "text"},
	"varchar":           {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "varchar"},
	"character varying": {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "varchar"},
	"char":              {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "char"},
	"character":         {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "char"},
	"citext":            {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "citext"},
	"name":              {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "string", SQLType: "name"},
	"uuid":              {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "uuid", SQLType: "uuid"},
	"bytea":             {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "bytes", SQLType: "bytea"},

	// Boolean
	"bool":    {Name: "boolean", TSType: "boolean", ZodSchema: "z.boolean()", StructType: "bool", SQLType: "boolean"},
	"boolean": {Name: "boolean", TSType: "boolean", ZodSchema: "z.boolean()", StructType: "bool", SQLType: "boolean"},

	// Integer variants
	"int":       {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "integer"},
	"int2":      {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "smallint"},
	"int4":      {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "integer"},
	"int8":      {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "bigint"},
	"smallint":  {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "smallint"},
	"integer":   {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "integer"},
	"bigint":    {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "bigint"},
	"serial":    {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "integer"},
	"bigserial": {Name: "number", TSType: "number", ZodSchema: "z.number().int()", StructType: "int", SQLType: "bigint"},

	// Float variants
	"real":             {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "real"},
	"float4":           {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "real"},
	"float8":           {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "double precision"},
	"double precision": {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "double precision"},
	"numeric":          {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "numeric"},
	"decimal":          {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "numeric"},
	"money":            {Name: "number", TSType: "number", ZodSchema: "z.number()", StructType: "float", SQLType: "money"},

	// JSON-like types render as an open string-keyed mapping
	"json":  {Name: "Record<string, unknown>", TSType: "Record<string, unknown>", ZodSchema: "z.record(z.string(), z.unknown())", StructType: "map", SQLType: "json"},
	"jsonb": {Name: "Record<string, unknown>", TSType: "Record<string, unknown>", ZodSchema: "z.record(z.string(), z.unknown())", StructType: "map", SQLType: "jsonb"},

	// Date and time types are carried as strings on the wire
	"date":                        {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "date", SQLType: "date"},
	"time":                        {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "time", SQLType: "time"},
	"timetz":                      {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "time", SQLType: "timetz"},
	"time without time zone":      {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "time", SQLType: "time"},
	"time with time zone":         {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "timetz", SQLType: "timetz"},
	"timestamp":                   {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "timestamp", SQLType: "timestamp"},
	"timestamptz":                 {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "timestamp", SQLType: "timestamptz"},
	"timestamp without time zone": {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "timestamp", SQLType: "timestamp"},
	"timestamp with time zone":    {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "timestamp", SQLType: "timestamptz"},
	"interval":                    {Name: "string", TSType: "string", ZodSchema: "z.string()", StructType: "duration", SQLType: "interval"},
}
