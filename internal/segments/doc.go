// Package segments is the 15-type segment catalog (§6): one typed payload
// struct per producer/consumer pair, plus thin constructors binding each to
// its fixed stem and module addressing over internal/typed. Payload shapes
// are shared across directions where the domain data is the same (e.g. CU's
// status snapshot fans out identically to MQT and RPC), mirroring the
// original's segment registry rather than inventing a distinct wire shape
// per consumer.
package segments
