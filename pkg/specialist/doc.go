// Package specialist holds the topic specialists consulted by domain handlers.
//
// A Specialist is data: a keyword list used for selection and an ordered ladder of
// branches. The first branch whose trigger fires on the normalized question is
// composed into the answer.
package specialist
