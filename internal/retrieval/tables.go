package retrieval

// Default tables for the MATLAB curriculum. Deployments can override
// any of these through the retrieval section of the config file; the
// components treat whatever tables they are constructed with as
// immutable.

// DefaultStopWords are tokens dropped during keyword extraction:
// articles, pronouns, auxiliary verbs and common chat filler.
var DefaultStopWords = []string{
	"the", "and", "but", "are", "was", "were", "has", "have", "had",
	"can", "could", "will", "would", "should", "may", "might", "must",
	"what", "when", "where", "which", "who", "whom", "why", "how",
	"does", "did", "done", "doing", "this", "that", "these", "those",
	"with", "from", "into", "onto", "about", "between", "through",
	"they", "them", "their", "there", "then", "than", "you", "your",
	"yours", "our", "ours", "its", "his", "her", "him", "she", "not",
	"all", "any", "some", "get", "got", "make", "made", "need", "want",
	"please", "tell", "just", "also", "very", "really", "like",
}

// DefaultSynonyms expands extracted keywords with related curriculum
// terms. Expanded terms carry a lower weight than the words the learner
// actually typed.
var DefaultSynonyms = map[string][]string{
	"loop":        {"for", "while", "iteration", "repeat", "control flow"},
	"loops":       {"for", "while", "iteration", "repeat", "control flow"},
	"matrix":      {"array", "matrices", "rows", "columns", "element"},
	"matrices":    {"array", "matrix", "rows", "columns", "element"},
	"vector":      {"array", "row", "column", "linspace", "colon"},
	"plot":        {"figure", "graph", "axes", "xlabel", "ylabel", "legend"},
	"plotting":    {"figure", "graph", "axes", "plot", "subplot"},
	"function":    {"subroutine", "arguments", "return", "nargin", "handle"},
	"functions":   {"subroutine", "arguments", "return", "nargin", "handle"},
	"variable":    {"workspace", "assignment", "scalar", "value"},
	"variables":   {"workspace", "assignment", "scalar", "value"},
	"string":      {"char", "text", "sprintf", "strcat", "concatenation"},
	"strings":     {"char", "text", "sprintf", "strcat", "concatenation"},
	"conditional": {"if", "else", "elseif", "switch", "branch"},
	"condition":   {"if", "else", "elseif", "switch", "branch"},
	"struct":      {"field", "record", "fieldnames", "dot notation"},
	"structs":     {"field", "record", "fieldnames", "dot notation"},
	"cell":        {"cell array", "braces", "heterogeneous", "indexing"},
	"file":        {"fopen", "fprintf", "load", "save", "csvread"},
	"error":       {"debugging", "breakpoint", "warning", "exception", "try"},
	"debug":       {"breakpoint", "error", "warning", "step", "workspace"},
	"recursion":   {"recursive", "base case", "stack", "function"},
	"sort":        {"sorting", "order", "ascending", "descending"},
	"index":       {"indexing", "subscript", "element", "colon"},
	"indexing":    {"subscript", "element", "colon", "logical"},
}

// Topic is one entry of the fixed curriculum catalog. Declaration order
// matters: classification ties break in favor of the earlier topic.
type Topic struct {
	Name     string
	Keywords []string
}

// TopicGeneral is the fallback label for questions no topic matches.
const TopicGeneral = "general"

// DefaultTopics is the curriculum catalog used for classification and
// mastery tracking.
var DefaultTopics = []Topic{
	{Name: "variables", Keywords: []string{"variable", "variables", "workspace", "assignment", "scalar", "value", "clear"}},
	{Name: "matrices", Keywords: []string{"matrix", "matrices", "transpose", "inverse", "determinant", "zeros", "ones", "eye", "reshape"}},
	{Name: "vectors", Keywords: []string{"vector", "vectors", "linspace", "colon", "row", "column", "element"}},
	{Name: "indexing", Keywords: []string{"index", "indexing", "subscript", "logical indexing", "end", "slice"}},
	{Name: "loops", Keywords: []string{"loop", "loops", "for", "while", "iterate", "iteration", "break", "continue"}},
	{Name: "conditionals", Keywords: []string{"if", "else", "elseif", "switch", "condition", "conditional", "logical", "comparison"}},
	{Name: "functions", Keywords: []string{"function", "functions", "argument", "arguments", "return", "nargin", "nargout", "handle", "anonymous"}},
	{Name: "scripts", Keywords: []string{"script", "scripts", "mfile", "command window", "run", "section"}},
	{Name: "strings", Keywords: []string{"string", "strings", "char", "sprintf", "strcat", "num2str", "text"}},
	{Name: "cell_arrays", Keywords: []string{"cell", "cells", "cell array", "braces", "cellfun", "heterogeneous"}},
	{Name: "structs", Keywords: []string{"struct", "structs", "structure", "field", "fields", "fieldnames"}},
	{Name: "plotting", Keywords: []string{"plot", "plotting", "figure", "graph", "axes", "xlabel", "ylabel", "legend", "subplot", "hold"}},
	{Name: "file_io", Keywords: []string{"file", "fopen", "fclose", "fprintf", "fscanf", "load", "save", "import", "export", "csv"}},
	{Name: "debugging", Keywords: []string{"debug", "debugging", "error", "errors", "breakpoint", "warning", "exception", "try", "catch"}},
}
