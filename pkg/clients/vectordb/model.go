package vectordb

// collectionInfo is the subset of the collection metadata we need.
type collectionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// queryRequest is the ChromaDB collection query body.
type queryRequest struct {
	QueryEmbeddings [][]float64            `json:"query_embeddings"`
	NResults        int                    `json:"n_results"`
	Where           map[string]interface{} `json:"where,omitempty"`
	Include         []string               `json:"include"`
}

// queryResponse comes back column-oriented, one inner slice per query vector.
type queryResponse struct {
	IDs       [][]string                 `json:"ids"`
	Documents [][]string                 `json:"documents"`
	Metadatas [][]map[string]interface{} `json:"metadatas"`
	Distances [][]float64                `json:"distances"`
}

// Result is one ranked similarity match, flattened for single-query use.
type Result struct {
	ID       string                 `json:"id"`
	Document string                 `json:"document"`
	Metadata map[string]interface{} `json:"metadata"`
	Distance float64                `json:"distance"`
}
