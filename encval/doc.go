package encval

/*

# Encoded values for road-graph edge flags

This package packs per-edge attributes (speed, access, road class, ...) into
a small fixed number of 32-bit storage words shared across every edge of the
graph. Each attribute is an *encoded value*: a named, bit-width-bounded field
whose position inside the words is decided once, at registration time, by a
BitAllocator.

A record for one edge looks like this for the registration order
(car_speed:5, oneway:1, road_class:3, lanes:3 directional):

	         word 0 (bits 0..31)
	+--------+-------+--------+------------+-------------+----------+
	|  5 bits| 1 bit | 3 bits |   3 bits   |   3 bits    | (unused) |
	|car_speed|oneway|road_cls| lanes(fwd) | lanes(bwd)  |          |
	+--------+-------+--------+------------+-------------+----------+

Layout rules:

  - allocation is strictly left to right in registration order, never
    spanning a word boundary; a slot is fully described by one
    (word, shift, mask) triple
  - the registration order and the per-value bit widths are therefore an
    implicit wire format: two processes interoperate on the same stored
    graph only if they register the same layout (see storage.Manifest)
  - the raw bit pattern 0 is reserved in every slot to mean "apply the
    value's default", so freshly zero-filled records decode to defaults
    for every attribute without any initialization pass

The reserved raw 0 makes one value of the 2^bits range unreachable for
direct encoding. Values that need a true zero, or a non-contiguous domain,
use MappedIntValue which keeps an explicit raw-to-logical table.

Registration and encode/decode are split into two phases. Registration is
single-writer and happens before the graph is shared. After that the layout
metadata is immutable and Decode is a pure read, safe for any number of
concurrent readers so long as no writer touches the same record.
*/
