package acaana

// Package acaana is a system for mining a bipartite author-keyword graph for
// potential research collaborators.
//
// Overview
//
// The system is comprised of the following component stages:
//
// 1. Input tables
//
// Two adjacency tables (author to keywords and keyword to authors) plus a
// keyword annotation table are produced by external data-preparation tooling.
// Each adjacency row looks like:
//
//     key,count,value1,value2,...
//
// Rows with a count of 1 or less carry no useful association and are skipped.
//
// Annotation rows look like:
//
//     keyword;weight;topic:subtopic:...
//
// Only the first colon-delimited topic segment is used, and it is resolved
// against the built-in topic hierarchy (a forest of Library of Congress
// derived subject trees).
//
// 2. Load seed authors into the to-explore queue
//
// Seed authors are internal authors, recognized by a naming convention such
// as:
//
//     GRT0001
//
// 3. Explore
//
// Each seed is explored depth-first up to the configured degrees of
// separation, alternating author, keyword, author, ...  Completed chains
// scoring at or above the path score threshold are emitted, and their terminal
// authors become collaborator candidates for the seed.
//
// 4. Cluster
//
// Seeds sharing more than a threshold number of collaborators are greedily
// merged into groups.
//
// 5. Report
//
// Stored results are summarized per seed, and the collaborator tables can be
// regenerated from the results DB at any time.
//
// * acaana annotate
// * acaana seeds bootstrap
// * acaana explore
// * acaana cluster
// * acaana report
//
